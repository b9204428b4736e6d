package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/services"
)

// GetCaptchaResponse represents a freshly issued challenge
type GetCaptchaResponse struct {
	ChallengeID string `json:"challenge_id"`
	Question    string `json:"question"`
}

// VerifyCaptchaRequest represents the answer submission
type VerifyCaptchaRequest struct {
	ChallengeID string `json:"challenge_id"`
	Answer      string `json:"answer"`
}

// VerifyCaptchaResponse represents the verification outcome. On success it
// carries a single-use review token.
type VerifyCaptchaResponse struct {
	Success     bool   `json:"success"`
	ReviewToken string `json:"review_token,omitempty"`
	Error       string `json:"error,omitempty"`
}

// GetCaptcha handles issuing a new math challenge for the caller's session
func GetCaptcha(w http.ResponseWriter, r *http.Request) {
	principal := services.ResolvePrincipal(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	challengeID, question, err := services.IssueChallenge(ctx, principal.String())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to create challenge"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetCaptchaResponse{
		ChallengeID: challengeID.String(),
		Question:    question,
	})
}

// VerifyCaptcha handles checking a submitted answer. A correct answer marks
// the challenge solved and grants a single-use review token.
func VerifyCaptcha(w http.ResponseWriter, r *http.Request) {
	principal := services.ResolvePrincipal(w, r)

	var req VerifyCaptchaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(VerifyCaptchaResponse{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	challengeID, err := uuid.Parse(req.ChallengeID)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(VerifyCaptchaResponse{
			Success: false,
			Error:   "Challenge not found",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := services.VerifyChallenge(ctx, challengeID, req.Answer); err != nil {
		msg := "Verification failed"
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			msg = "Challenge not found"
		case errors.Is(err, services.ErrChallengeExpired):
			msg = "Challenge expired, please request a new one"
		case errors.Is(err, services.ErrChallengeMismatch):
			msg = "Incorrect answer, please try again"
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(VerifyCaptchaResponse{Success: false, Error: msg})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(VerifyCaptchaResponse{Success: false, Error: msg})
		return
	}

	token, err := services.GrantReviewToken(principal)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(VerifyCaptchaResponse{
			Success: false,
			Error:   "Failed to grant review token",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(VerifyCaptchaResponse{
		Success:     true,
		ReviewToken: token,
	})
}
