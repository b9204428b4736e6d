package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     uuid.UUID `json:"user_id"`
	BusinessID uuid.UUID `json:"business_id"`

	// Rating is a 1-5 star value; validated at creation.
	Rating  int    `json:"rating"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`

	IsVerified bool `json:"is_verified"`

	// HelpfulCount is stored and serialized but nothing increments it yet.
	HelpfulCount int `json:"helpful_count"`
}
