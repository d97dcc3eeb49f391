package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"

	errs "gomoku_arena/internal/errors"
)

func newMongoStorage(mt *mtest.T) *MongoUserStorage {
	return NewMongoUserStorage(mt.DB, zap.NewNop().Sugar(), time.Second, 1000)
}

func TestMongoUserStorage(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find rating", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gomoku.users", mtest.FirstBatch, bson.D{
			{Key: "username", Value: "alice"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "rating", Value: 1016.0},
		}))

		rating, err := newMongoStorage(mt).FindRating(ctx, "alice")
		require.NoError(mt, err)
		assert.Equal(mt, 1016.0, rating)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gomoku.users", mtest.FirstBatch, bson.D{
			{Key: "username", Value: "bob"},
			{Key: "email", Value: "bob@example.com"},
			{Key: "rating", Value: 984.0},
		}))

		u, err := newMongoStorage(mt).FindUserByEmail(ctx, "bob@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, "bob", u.Username)
	})

	mt.Run("user not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gomoku.users", mtest.FirstBatch))

		_, err := newMongoStorage(mt).FindRating(ctx, "ghost")
		assert.ErrorIs(mt, err, errs.ErrUserNotFound)
	})

	mt.Run("update rating", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, newMongoStorage(mt).UpdateRating(ctx, "alice", 1008.3))
	})

	mt.Run("update unknown user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := newMongoStorage(mt).UpdateUserRating(ctx, "ghost", 1000)
		assert.ErrorIs(mt, err, errs.ErrUserNotFound)
	})

	mt.Run("create user", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "gomoku.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		u, err := newMongoStorage(mt).CreateUser(ctx, "carol", "carol@example.com", "hash")
		require.NoError(mt, err)
		assert.Equal(mt, 1000.0, u.Rating)
		assert.NotEmpty(mt, u.ID)
	})

	mt.Run("create existing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gomoku.users", mtest.FirstBatch, bson.D{
			{Key: "username", Value: "carol"},
		}))

		_, err := newMongoStorage(mt).CreateUser(ctx, "carol", "carol@example.com", "hash")
		assert.ErrorIs(mt, err, errs.ErrUserExists)
	})

	mt.Run("create duplicate key", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "gomoku.users", mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}),
		)

		_, err := newMongoStorage(mt).CreateUser(ctx, "dave", "dave@example.com", "hash")
		assert.ErrorIs(mt, err, errs.ErrUserExists)
	})
}
