package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/models"
	"github.com/localboost/localboost-backend/internal/services"
)

// CreateReviewRequest represents the request to post a review
type CreateReviewRequest struct {
	ReviewToken string `json:"review_token"`
	BusinessID  string `json:"business_id"`
	Rating      int    `json:"rating"`
	Title       string `json:"title"`
	Content     string `json:"content"`
}

// CreateReviewResponse represents the response after posting a review
type CreateReviewResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Review  *models.Review `json:"review,omitempty"`
}

// CreateReview handles posting a review. The caller must present a review
// token earned by solving a CAPTCHA; each token is good for exactly one
// review.
func CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(CreateReviewResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(CreateReviewResponse{
			Success: false,
			Message: "Business not found",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Validate before redeeming the token so a fixable mistake does not cost
	// the caller their CAPTCHA.
	if err := services.ValidateReview(ctx, businessID, req.Rating, req.Content); err != nil {
		status := http.StatusInternalServerError
		msg := "Failed to create review"
		switch {
		case errors.Is(err, services.ErrBusinessNotFound):
			status = http.StatusNotFound
			msg = "Business not found"
		case errors.Is(err, services.ErrInvalidRating):
			status = http.StatusBadRequest
			msg = "Rating must be between 1 and 5"
		case errors.Is(err, services.ErrReviewTooShort):
			status = http.StatusBadRequest
			msg = "Review must be at least 10 characters long"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(CreateReviewResponse{
			Success: false,
			Message: msg,
		})
		return
	}

	userID, ok := services.ConsumeReviewToken(req.ReviewToken)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(CreateReviewResponse{
			Success: false,
			Message: "Please complete CAPTCHA verification",
		})
		return
	}

	if err := services.EnsureUser(ctx, userID); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(CreateReviewResponse{
			Success: false,
			Message: "Failed to create review",
		})
		return
	}

	review, err := services.CreateReview(ctx, userID, businessID, req.Rating, req.Title, req.Content)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Failed to create review"
		switch {
		case errors.Is(err, services.ErrBusinessNotFound):
			status = http.StatusNotFound
			msg = "Business not found"
		case errors.Is(err, services.ErrInvalidRating):
			status = http.StatusBadRequest
			msg = "Rating must be between 1 and 5"
		case errors.Is(err, services.ErrReviewTooShort):
			status = http.StatusBadRequest
			msg = "Review must be at least 10 characters long"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(CreateReviewResponse{
			Success: false,
			Message: msg,
		})
		return
	}

	// New ratings change listing metrics; drop the cached directory pages
	cache.DeleteByPrefix("businesses:")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateReviewResponse{
		Success: true,
		Message: "Review submitted successfully",
		Review:  &review,
	})
}
