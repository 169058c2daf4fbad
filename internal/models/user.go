package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ProfilePic   *string   `json:"profilePic" db:"profile_pic"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserPublic is the projection of a user returned by the API.
// swagger:model UserPublic
type UserPublic struct {
	// User ID
	// example: 5f0c8e43-8a57-4c0a-9b7e-2d6f3f0f4b1e
	ID uuid.UUID `json:"id"`

	// Username
	// example: alice
	Username string `json:"username"`

	// Email
	// example: alice@example.com
	Email string `json:"email"`

	// Administrator flag
	// example: false
	IsAdmin bool `json:"isAdmin"`
}

// Public returns the public view of the user.
func (u *UserDB) Public() UserPublic {
	return UserPublic{
		ID:       u.UserID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}

// PublicUsers converts a slice of users into their public views.
func PublicUsers(users []*UserDB) []UserPublic {
	result := make([]UserPublic, 0, len(users))
	for _, u := range users {
		result = append(result, u.Public())
	}
	return result
}
