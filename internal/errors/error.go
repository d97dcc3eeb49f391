package errors

import "errors"

var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrInvalidMove           = errors.New("invalid move")
	ErrRatingLookup          = errors.New("rating lookup failed")
	ErrRatingPersist         = errors.New("rating persist failed")
	ErrIDGenerationExhausted = errors.New("room id generation exhausted")
	ErrInvalidRoomOptions    = errors.New("invalid room options")
	ErrAlreadyQueued         = errors.New("connection already queued")
	ErrRatingSnapshotMissing = errors.New("rating snapshot missing")
	ErrUserNotFound          = errors.New("user with provided username was not found")
	ErrUserExists            = errors.New("user already exists")
	ErrInternal              = errors.New("internal error")
)
