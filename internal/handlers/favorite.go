package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/models"
	"github.com/localboost/localboost-backend/internal/services"
)

// AddFavoriteRequest represents the request to favorite a business
type AddFavoriteRequest struct {
	BusinessID string `json:"business_id"`
	Notes      string `json:"notes"`
}

// FavoriteWithBusiness is a favorite joined with the business it bookmarks
type FavoriteWithBusiness struct {
	models.Favorite
	Business *BusinessSummary `json:"business"`
}

// ListFavoritesResponse represents the caller's favorites, newest first
type ListFavoritesResponse struct {
	Favorites []FavoriteWithBusiness `json:"favorites"`
	Total     int                    `json:"total"`
}

// FavoriteResponse represents the response after adding or removing a favorite
type FavoriteResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Favorite *models.Favorite `json:"favorite,omitempty"`
}

// ListFavorites handles listing the caller's favorited businesses
func ListFavorites(w http.ResponseWriter, r *http.Request) {
	principal := services.ResolvePrincipal(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	favorites, err := services.ListFavorites(ctx, principal)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to load favorites"})
		return
	}

	directory, err := services.LoadDirectory(ctx)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to load favorites"})
		return
	}
	byID := make(map[uuid.UUID]services.RatedBusiness, len(directory))
	for _, rb := range directory {
		byID[rb.ID] = rb
	}

	out := make([]FavoriteWithBusiness, 0, len(favorites))
	for _, fav := range favorites {
		entry := FavoriteWithBusiness{Favorite: fav}
		if rb, ok := byID[fav.BusinessID]; ok {
			summary := summarize(rb)
			entry.Business = &summary
		}
		out = append(out, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListFavoritesResponse{
		Favorites: out,
		Total:     len(out),
	})
}

// AddFavorite handles bookmarking a business for the caller
func AddFavorite(w http.ResponseWriter, r *http.Request) {
	principal := services.ResolvePrincipal(w, r)

	var req AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(FavoriteResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(FavoriteResponse{
			Success: false,
			Message: "Business not found",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	favorite, err := services.AddFavorite(ctx, principal, businessID, req.Notes)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Failed to add favorite"
		switch {
		case errors.Is(err, services.ErrBusinessNotFound):
			status = http.StatusNotFound
			msg = "Business not found"
		case errors.Is(err, services.ErrAlreadyFavorited):
			status = http.StatusConflict
			msg = "Business is already in favorites"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(FavoriteResponse{
			Success: false,
			Message: msg,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(FavoriteResponse{
		Success:  true,
		Message:  "Added to favorites",
		Favorite: &favorite,
	})
}

// RemoveFavorite handles deleting one of the caller's favorites
func RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	principal := services.ResolvePrincipal(w, r)

	favoriteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(FavoriteResponse{
			Success: false,
			Message: "Favorite not found",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := services.RemoveFavorite(ctx, principal, favoriteID); err != nil {
		status := http.StatusInternalServerError
		msg := "Failed to remove favorite"
		if errors.Is(err, services.ErrFavoriteNotFound) {
			status = http.StatusNotFound
			msg = "Favorite not found"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(FavoriteResponse{
			Success: false,
			Message: msg,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FavoriteResponse{
		Success: true,
		Message: "Removed from favorites",
	})
}
