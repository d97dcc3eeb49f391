package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"gomoku_arena/internal/domain/user"
	errs "gomoku_arena/internal/errors"
)

const usersCollection = "users"

type MongoUserStorage struct {
	db            *mongo.Database
	log           *zap.SugaredLogger
	timeout       time.Duration
	defaultRating float64
}

func NewMongoUserStorage(db *mongo.Database, log *zap.SugaredLogger, timeout time.Duration, defaultRating float64) *MongoUserStorage {
	return &MongoUserStorage{
		db:            db,
		log:           log,
		timeout:       timeout,
		defaultRating: defaultRating,
	}
}

func (m *MongoUserStorage) FindUserByUsername(ctx context.Context, username string) (user.User, error) {
	return m.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (m *MongoUserStorage) FindUserByEmail(ctx context.Context, email string) (user.User, error) {
	return m.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (m *MongoUserStorage) findOne(ctx context.Context, filter bson.D) (user.User, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var result user.User
	err := m.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, errs.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("find user: %w", err)
	}
	return result, nil
}

func (m *MongoUserStorage) CreateUser(ctx context.Context, username, email, passwordHash string) (user.User, error) {
	_, err := m.FindUserByUsername(ctx, username)
	if err == nil {
		return user.User{}, errs.ErrUserExists
	}
	if !errors.Is(err, errs.ErrUserNotFound) {
		return user.User{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	now := time.Now()
	newUser := user.User{
		Username:     username,
		Email:        email,
		CreatedAt:    now,
		UpdatedAt:    now,
		Rating:       m.defaultRating,
		PasswordHash: passwordHash,
	}
	result, err := m.db.Collection(usersCollection).InsertOne(ctx, newUser)
	if mongo.IsDuplicateKeyError(err) {
		return user.User{}, errs.ErrUserExists
	}
	if err != nil {
		m.log.Errorw("insert user failed", "user", username, "error", err)
		return user.User{}, errs.ErrInternal
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newUser.ID = oid.Hex()
	}
	return newUser, nil
}

func (m *MongoUserStorage) UpdateUserRating(ctx context.Context, username string, rating float64) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "rating", Value: rating},
		{Key: "updated_at", Value: time.Now()},
	}}}
	result, err := m.db.Collection(usersCollection).UpdateOne(ctx, bson.D{{Key: "username", Value: username}}, update)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	if result.MatchedCount == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

func (m *MongoUserStorage) FindRating(ctx context.Context, username string) (float64, error) {
	u, err := m.FindUserByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	return u.Rating, nil
}

func (m *MongoUserStorage) UpdateRating(ctx context.Context, username string, rating float64) error {
	return m.UpdateUserRating(ctx, username, rating)
}
