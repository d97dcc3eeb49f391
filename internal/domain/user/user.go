package user

import "time"

const DefaultRating = 1000

type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
	Rating       float64   `json:"rating" bson:"rating"`
	PasswordHash string    `json:"-" bson:"password_hash"`
}
