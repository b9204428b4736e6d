package services

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localboost/localboost-backend/internal/models"
)

func TestGenerateMathChallenge(t *testing.T) {
	for i := 0; i < 200; i++ {
		question, answer := GenerateMathChallenge()

		var num1, num2 int
		var symbol string
		_, err := fmt.Sscanf(question, "What is %d %s %d?", &num1, &symbol, &num2)
		require.NoError(t, err, question)

		assert.GreaterOrEqual(t, num1, 1)
		assert.LessOrEqual(t, num1, 10)
		assert.GreaterOrEqual(t, num2, 1)
		assert.LessOrEqual(t, num2, 10)

		// Operands are ordered so subtraction never goes negative.
		assert.GreaterOrEqual(t, num1, num2, question)

		result, err := strconv.Atoi(answer)
		require.NoError(t, err)
		switch symbol {
		case "+":
			assert.Equal(t, num1+num2, result)
		case "-":
			assert.Equal(t, num1-num2, result)
			assert.GreaterOrEqual(t, result, 0)
		case "×":
			assert.Equal(t, num1*num2, result)
		default:
			t.Fatalf("unexpected operator %q in %q", symbol, question)
		}
	}
}

func TestGenerateMathChallengeCoversAllOperators(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 500 && len(seen) < 3; i++ {
		question, _ := GenerateMathChallenge()
		for _, op := range []string{" + ", " - ", " × "} {
			if strings.Contains(question, op) {
				seen[op] = true
			}
		}
	}
	assert.Len(t, seen, 3)
}

func challengeAt(created time.Time, answer string) models.CaptchaChallenge {
	return models.CaptchaChallenge{
		ID:        uuid.New(),
		CreatedAt: created,
		SessionID: "test-session",
		Answer:    answer,
	}
}

func TestCheckChallengeCorrectAnswer(t *testing.T) {
	now := time.Now()
	ch := challengeAt(now.Add(-time.Minute), "7")
	assert.NoError(t, CheckChallenge(ch, "7", now))
}

func TestCheckChallengeTrimsAnswer(t *testing.T) {
	now := time.Now()
	ch := challengeAt(now, "12")
	assert.NoError(t, CheckChallenge(ch, "  12 ", now))
}

func TestCheckChallengeStringNotNumericEquality(t *testing.T) {
	now := time.Now()
	ch := challengeAt(now, "7")
	assert.ErrorIs(t, CheckChallenge(ch, "7.0", now), ErrChallengeMismatch)
	assert.ErrorIs(t, CheckChallenge(ch, "07", now), ErrChallengeMismatch)
}

func TestCheckChallengeMismatch(t *testing.T) {
	now := time.Now()
	ch := challengeAt(now, "7")
	assert.ErrorIs(t, CheckChallenge(ch, "8", now), ErrChallengeMismatch)
	// A failed attempt does not consume the challenge; a retry with the
	// right answer still passes.
	assert.NoError(t, CheckChallenge(ch, "7", now))
}

func TestCheckChallengeExpiry(t *testing.T) {
	created := time.Now()
	ch := challengeAt(created, "7")

	// Exactly at the deadline is still accepted.
	assert.NoError(t, CheckChallenge(ch, "7", created.Add(ChallengeTTL)))
	// One second past the deadline is expired, even with the right answer.
	assert.ErrorIs(t, CheckChallenge(ch, "7", created.Add(ChallengeTTL+time.Second)), ErrChallengeExpired)
}
