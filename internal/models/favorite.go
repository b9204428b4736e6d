package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite bookmarks a business for a user. At most one favorite may exist per
// (user, business) pair; the favorites table carries a unique constraint on it.
type Favorite struct {
	ID         uuid.UUID `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     uuid.UUID `json:"user_id"`
	BusinessID uuid.UUID `json:"business_id"`

	// Notes are the user's personal notes about the business.
	Notes string `json:"notes,omitempty"`
}
