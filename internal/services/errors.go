package services

import "errors"

// Sentinel errors surfaced to handlers. All of them are recoverable request
// errors; handlers map them to HTTP statuses.
var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrFavoriteNotFound = errors.New("favorite not found")

	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrReviewTooShort = errors.New("review must be at least 10 characters")

	ErrAlreadyFavorited = errors.New("already in favorites")

	ErrChallengeNotFound = errors.New("invalid challenge")
	ErrChallengeExpired  = errors.New("challenge expired")
	ErrChallengeMismatch = errors.New("incorrect answer")

	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
