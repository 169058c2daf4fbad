package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenDB represents a bearer token record in the database.
// swagger:model Token
type TokenDB struct {
	// Token ID
	TokenID uuid.UUID `json:"id" db:"token_id"`

	// Bearer credential
	// example: q1X9fV1lYf4pD0c7m1fJ2A==
	Value string `json:"token" db:"token"`

	// Owner of the token
	UserID uuid.UUID `json:"userID" db:"user_id"`

	CreatedAt time.Time `json:"-" db:"created_at"`
}
