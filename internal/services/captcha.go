package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/database"
	"github.com/localboost/localboost-backend/internal/models"
)

// ChallengeTTL is how long an issued challenge stays answerable.
const ChallengeTTL = 5 * time.Minute

// GenerateMathChallenge builds one arithmetic challenge. Operands are 1..10
// and swapped so subtraction never goes negative; the answer is the exact
// string form of the result.
func GenerateMathChallenge() (question, answer string) {
	num1 := rand.Intn(10) + 1
	num2 := rand.Intn(10) + 1
	if num1 < num2 {
		num1, num2 = num2, num1
	}

	var symbol string
	var result int
	switch rand.Intn(3) {
	case 0:
		symbol, result = "+", num1+num2
	case 1:
		symbol, result = "-", num1-num2
	default:
		symbol, result = "×", num1*num2
	}

	question = fmt.Sprintf("What is %d %s %d?", num1, symbol, num2)
	answer = fmt.Sprintf("%d", result)
	return question, answer
}

// IssueChallenge generates a challenge, persists it keyed by the caller's
// session, and returns its id plus the question to show.
func IssueChallenge(ctx context.Context, sessionID string) (uuid.UUID, string, error) {
	question, answer := GenerateMathChallenge()

	challenge := models.CaptchaChallenge{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		SessionID: sessionID,
		Answer:    answer,
	}
	_, err := database.PostgresDB.ExecContext(ctx, `
		INSERT INTO captcha_challenges (id, created_at, session_id, answer)
		VALUES ($1, $2, $3, $4)
	`, challenge.ID, challenge.CreatedAt, challenge.SessionID, challenge.Answer)
	if err != nil {
		return uuid.Nil, "", err
	}
	return challenge.ID, question, nil
}

// CheckChallenge decides a verification attempt against a loaded challenge.
// Answers are compared as trimmed strings, not numerically, so "7.0" does not
// pass for "7".
func CheckChallenge(challenge models.CaptchaChallenge, submitted string, now time.Time) error {
	if now.Sub(challenge.CreatedAt) > ChallengeTTL {
		return ErrChallengeExpired
	}
	if challenge.Answer != strings.TrimSpace(submitted) {
		return ErrChallengeMismatch
	}
	return nil
}

// VerifyChallenge checks a submitted answer and marks the challenge solved.
// A failed attempt leaves the challenge unsolved and answerable until it
// expires. The solved bit is flipped with a conditional update so two
// concurrent verifications cannot both consume the same challenge.
func VerifyChallenge(ctx context.Context, challengeID uuid.UUID, submitted string) error {
	var challenge models.CaptchaChallenge
	err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT id, created_at, session_id, answer, is_solved
		FROM captcha_challenges
		WHERE id = $1
	`, challengeID).Scan(&challenge.ID, &challenge.CreatedAt, &challenge.SessionID,
		&challenge.Answer, &challenge.IsSolved)
	if err == sql.ErrNoRows {
		return ErrChallengeNotFound
	}
	if err != nil {
		return err
	}
	if challenge.IsSolved {
		return ErrChallengeNotFound
	}

	if err := CheckChallenge(challenge, submitted, time.Now().UTC()); err != nil {
		return err
	}

	result, err := database.PostgresDB.ExecContext(ctx, `
		UPDATE captcha_challenges SET is_solved = TRUE
		WHERE id = $1 AND is_solved = FALSE
	`, challengeID)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		// Lost the race to a concurrent verify.
		return ErrChallengeNotFound
	}
	return nil
}

// StartChallengeCleanup starts a background loop that deletes expired
// challenges. Without it the table grows without bound, since verification
// never deletes rows.
func StartChallengeCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().UTC().Add(-ChallengeTTL)
			result, err := database.PostgresDB.Exec(`
				DELETE FROM captcha_challenges WHERE created_at < $1
			`, cutoff)
			if err != nil {
				log.Printf("captcha cleanup failed: %v", err)
				continue
			}
			if deleted, err := result.RowsAffected(); err == nil && deleted > 0 {
				log.Printf("captcha cleanup removed %d expired challenges", deleted)
			}
		}
	}()
}
