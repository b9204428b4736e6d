package models

import (
	"time"

	"github.com/google/uuid"
)

// CaptchaChallenge is one issued arithmetic challenge. A challenge belongs to
// the session that requested it, expires five minutes after creation, and is
// marked solved at most once.
type CaptchaChallenge struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SessionID string `json:"session_id"`

	// Answer is the expected answer in exact string form.
	Answer string `json:"-"`

	IsSolved bool `json:"is_solved"`
}
