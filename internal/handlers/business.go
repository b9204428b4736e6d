package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/models"
	"github.com/localboost/localboost-backend/internal/services"
)

var cache services.CacheService

// BusinessSummary is a business as shown in directory listings, with its
// derived metrics attached.
type BusinessSummary struct {
	models.Business
	Hours         map[string]string `json:"hours"`
	AverageRating float64           `json:"average_rating"`
	ReviewCount   int               `json:"review_count"`
	HasDeals      bool              `json:"has_deals"`
}

// ListBusinessesResponse represents the paginated directory listing
type ListBusinessesResponse struct {
	Businesses []BusinessSummary `json:"businesses"`
	Total      int               `json:"total"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
}

// ReviewWithAuthor is a review joined with its author's username
type ReviewWithAuthor struct {
	models.Review
	Username string `json:"username"`
}

// BusinessDetailResponse represents the full business page payload
type BusinessDetailResponse struct {
	BusinessSummary
	ActiveDeals []models.Deal      `json:"active_deals"`
	Reviews     []ReviewWithAuthor `json:"reviews"`
}

// ListCategoriesResponse represents the category index with counts
type ListCategoriesResponse struct {
	Categories []services.CategoryCount `json:"categories"`
}

func summarize(rb services.RatedBusiness) BusinessSummary {
	return BusinessSummary{
		Business:      rb.Business,
		Hours:         models.ParseHours(rb.Hours),
		AverageRating: math.Round(rb.AverageRating*10) / 10,
		ReviewCount:   rb.ReviewCount,
		HasDeals:      rb.HasDeals,
	}
}

// ListBusinesses handles the directory listing with filtering, search,
// sorting, and pagination
func ListBusinesses(w http.ResponseWriter, r *http.Request) {
	q := services.BusinessQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Sort:     r.URL.Query().Get("sort"),
		Limit:    services.DefaultQueryLimit,
		Offset:   0,
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Offset = n
		}
	}

	cacheKey := fmt.Sprintf("businesses:%s:%s:%s:%d:%d",
		q.Category, q.Search, q.Sort, q.Limit, q.Offset)
	var cached ListBusinessesResponse
	if hit, _ := cache.Get(cacheKey, &cached); hit {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	directory, err := services.LoadDirectory(ctx)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to load businesses"})
		return
	}

	page, total := services.QueryBusinesses(directory, q)
	summaries := make([]BusinessSummary, 0, len(page))
	for _, rb := range page {
		summaries = append(summaries, summarize(rb))
	}

	resp := ListBusinessesResponse{
		Businesses: summaries,
		Total:      total,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	cache.SetWithTTL(cacheKey, resp, services.DirectoryCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetBusinessDetail handles the single business page: the business with its
// metrics, active deals, and reviews newest first
func GetBusinessDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Business not found"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	business, err := services.GetBusiness(ctx, id)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Failed to load business"
		if errors.Is(err, services.ErrBusinessNotFound) {
			status = http.StatusNotFound
			msg = "Business not found"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": msg})
		return
	}

	reviews, usernames, err := services.LoadBusinessReviews(ctx, id)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to load reviews"})
		return
	}

	deals, err := services.LoadDeals(ctx, true)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to load deals"})
		return
	}

	ratings := make([]int, 0, len(reviews))
	for _, rev := range reviews {
		ratings = append(ratings, rev.Rating)
	}
	activeDeals := services.ActiveDealsForBusiness(deals, id)

	detail := BusinessDetailResponse{
		BusinessSummary: summarize(services.RatedBusiness{
			Business:      business,
			AverageRating: services.AverageRating(ratings),
			ReviewCount:   len(reviews),
			HasDeals:      len(activeDeals) > 0,
		}),
		ActiveDeals: activeDeals,
		Reviews:     make([]ReviewWithAuthor, 0, len(reviews)),
	}
	for _, rev := range reviews {
		detail.Reviews = append(detail.Reviews, ReviewWithAuthor{
			Review:   rev,
			Username: usernames[rev.UserID],
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail)
}

// ListCategories handles the category index with per-category business counts
func ListCategories(w http.ResponseWriter, r *http.Request) {
	cacheKey := "categories"
	var cached ListCategoriesResponse
	if hit, _ := cache.Get(cacheKey, &cached); hit {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	counts, err := services.LoadCategoryCounts(ctx)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to load categories"})
		return
	}

	resp := ListCategoriesResponse{Categories: counts}
	cache.SetWithTTL(cacheKey, resp, services.StaticCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
