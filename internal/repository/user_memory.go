package repo

import (
	"context"
	"sync"
	"time"

	"gomoku_arena/internal/domain/user"
	errs "gomoku_arena/internal/errors"
)

// UserMapStorage keeps users in memory. With autoRegister, an unknown
// username looked up for its rating is created with the default rating.
type UserMapStorage struct {
	mu            sync.RWMutex
	users         map[string]user.User
	defaultRating float64
	autoRegister  bool
}

func NewMapUserStorage(defaultRating float64, autoRegister bool) *UserMapStorage {
	return &UserMapStorage{
		users:         make(map[string]user.User),
		defaultRating: defaultRating,
		autoRegister:  autoRegister,
	}
}

func (u *UserMapStorage) FindUserByUsername(_ context.Context, username string) (user.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	v, ok := u.users[username]
	if !ok {
		return user.User{}, errs.ErrUserNotFound
	}
	return v, nil
}

func (u *UserMapStorage) FindUserByEmail(_ context.Context, email string) (user.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, v := range u.users {
		if v.Email == email {
			return v, nil
		}
	}
	return user.User{}, errs.ErrUserNotFound
}

func (u *UserMapStorage) CreateUser(_ context.Context, username, email, passwordHash string) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.users[username]; ok {
		return user.User{}, errs.ErrUserExists
	}
	return u.insertLocked(username, email, passwordHash), nil
}

func (u *UserMapStorage) insertLocked(username, email, passwordHash string) user.User {
	now := time.Now()
	v := user.User{
		ID:           username,
		Username:     username,
		Email:        email,
		CreatedAt:    now,
		UpdatedAt:    now,
		Rating:       u.defaultRating,
		PasswordHash: passwordHash,
	}
	u.users[username] = v
	return v
}

func (u *UserMapStorage) UpdateUserRating(_ context.Context, username string, rating float64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	v, ok := u.users[username]
	if !ok {
		return errs.ErrUserNotFound
	}
	v.Rating = rating
	v.UpdatedAt = time.Now()
	u.users[username] = v
	return nil
}

func (u *UserMapStorage) FindRating(_ context.Context, username string) (float64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	v, ok := u.users[username]
	if !ok {
		if !u.autoRegister {
			return 0, errs.ErrUserNotFound
		}
		v = u.insertLocked(username, "", "")
	}
	return v.Rating, nil
}

func (u *UserMapStorage) UpdateRating(ctx context.Context, username string, rating float64) error {
	return u.UpdateUserRating(ctx, username, rating)
}
