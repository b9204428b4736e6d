package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Username string `json:"username"`
	Email    string `json:"email"`

	// Internal only - never returned in JSON
	PasswordHash string `json:"-"`

	IsVerified bool `json:"is_verified"`
}
