package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/database"
)

const (
	// SessionDuration is 7 days.
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for signed-in sessions.
	SessionKeyPrefix = "session:"

	// SessionCookie carries the signed-in session token.
	SessionCookie = "lb_session"
	// VisitorCookie carries the anonymous visitor principal.
	VisitorCookie = "lb_visitor"

	// ReviewTokenPrefix is the Redis key prefix for single-use review tokens
	// issued by a successful CAPTCHA verification.
	ReviewTokenPrefix = "review_token:"
	// ReviewTokenTTL bounds how long a verified CAPTCHA authorizes a review.
	ReviewTokenTTL = 10 * time.Minute
)

func newToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}

// CreateSession creates a Redis-backed session for a signed-in user and
// returns the session token.
func CreateSession(userID uuid.UUID) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	if err := database.RedisClient.Set(ctx, SessionKeyPrefix+token, userID.String(), SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateSession resolves a session token to a user id.
func ValidateSession(token string) (uuid.UUID, bool) {
	if token == "" {
		return uuid.Nil, false
	}

	ctx := context.Background()
	userIDStr, err := database.RedisClient.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// DestroySession removes a session token.
func DestroySession(token string) error {
	return database.RedisClient.Del(context.Background(), SessionKeyPrefix+token).Err()
}

// GrantReviewToken issues a single-use authorization for one review
// submission, tied to the principal the CAPTCHA was verified for.
func GrantReviewToken(principalID uuid.UUID) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	if err := database.RedisClient.Set(ctx, ReviewTokenPrefix+token, principalID.String(), ReviewTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeReviewToken atomically redeems a review token. GETDEL guarantees a
// token authorizes exactly one review even under concurrent submissions.
func ConsumeReviewToken(token string) (uuid.UUID, bool) {
	if token == "" {
		return uuid.Nil, false
	}

	ctx := context.Background()
	principalStr, err := database.RedisClient.GetDel(ctx, ReviewTokenPrefix+token).Result()
	if err != nil {
		return uuid.Nil, false
	}
	principalID, err := uuid.Parse(principalStr)
	if err != nil {
		return uuid.Nil, false
	}
	return principalID, true
}

// ResolvePrincipal identifies the request: a signed-in user when a valid
// session cookie is present, otherwise the anonymous visitor principal from
// the visitor cookie (set on first contact).
func ResolvePrincipal(w http.ResponseWriter, r *http.Request) uuid.UUID {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if userID, ok := ValidateSession(cookie.Value); ok {
			return userID
		}
	}

	if cookie, err := r.Cookie(VisitorCookie); err == nil {
		if visitorID, err := uuid.Parse(cookie.Value); err == nil {
			return visitorID
		}
	}

	visitorID := uuid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookie,
		Value:    visitorID.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return visitorID
}

// SetSessionCookie attaches a signed-in session token to the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
