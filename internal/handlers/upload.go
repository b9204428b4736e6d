package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/database"
	"github.com/localboost/localboost-backend/internal/services"
)

// Cloudinary is the shared upload client, nil when credentials are not
// configured.
var Cloudinary *services.CloudinaryService

const maxPhotoSize = 10 << 20 // 10 MB

// UploadPhotoResponse represents the response after uploading a business photo
type UploadPhotoResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// UploadBusinessPhoto handles uploading a photo for a business and setting it
// as the business image
func UploadBusinessPhoto(w http.ResponseWriter, r *http.Request) {
	if Cloudinary == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(UploadPhotoResponse{
			Success: false,
			Message: "Photo uploads are not configured",
		})
		return
	}

	businessID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(UploadPhotoResponse{
			Success: false,
			Message: "Business not found",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if _, err := services.GetBusiness(ctx, businessID); err != nil {
		status := http.StatusInternalServerError
		msg := "Failed to upload photo"
		if errors.Is(err, services.ErrBusinessNotFound) {
			status = http.StatusNotFound
			msg = "Business not found"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(UploadPhotoResponse{
			Success: false,
			Message: msg,
		})
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(UploadPhotoResponse{
			Success: false,
			Message: "Invalid upload",
		})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(UploadPhotoResponse{
			Success: false,
			Message: "A file is required",
		})
		return
	}
	defer file.Close()

	imageURL, err := Cloudinary.UploadPhoto(ctx, file)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(UploadPhotoResponse{
			Success: false,
			Message: "Failed to upload photo",
		})
		return
	}

	_, err = database.PostgresDB.ExecContext(ctx,
		`UPDATE businesses SET image_url = $1 WHERE id = $2`, imageURL, businessID)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(UploadPhotoResponse{
			Success: false,
			Message: "Failed to save photo",
		})
		return
	}

	// The listing caches carry the old image URL until they expire or are
	// dropped
	cache.DeleteByPrefix("businesses:")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UploadPhotoResponse{
		Success:  true,
		ImageURL: imageURL,
	})
}
