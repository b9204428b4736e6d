package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/models"
	"github.com/localboost/localboost-backend/internal/services"
)

// DealWithBusiness is a deal joined with the business offering it
type DealWithBusiness struct {
	models.Deal
	BusinessName     string `json:"business_name"`
	BusinessCategory string `json:"business_category"`
	BusinessAddress  string `json:"business_address"`
}

// ListDealsResponse represents all currently active deals
type ListDealsResponse struct {
	Deals []DealWithBusiness `json:"deals"`
	Total int                `json:"total"`
}

// ListDeals handles listing active deals, optionally filtered by the
// category of the offering business
func ListDeals(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	cacheKey := "deals:" + category
	var cached ListDealsResponse
	if hit, _ := cache.Get(cacheKey, &cached); hit {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deals, err := services.LoadDeals(ctx, true)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to load deals"})
		return
	}

	businesses, err := services.LoadBusinesses(ctx)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to load deals"})
		return
	}
	byID := make(map[uuid.UUID]models.Business, len(businesses))
	for _, b := range businesses {
		byID[b.ID] = b
	}

	out := make([]DealWithBusiness, 0, len(deals))
	for _, d := range deals {
		b, ok := byID[d.BusinessID]
		if !ok {
			continue
		}
		if category != "" && category != "all" && b.Category != category {
			continue
		}
		out = append(out, DealWithBusiness{
			Deal:             d,
			BusinessName:     b.Name,
			BusinessCategory: b.Category,
			BusinessAddress:  b.Address,
		})
	}

	resp := ListDealsResponse{Deals: out, Total: len(out)}
	cache.SetWithTTL(cacheKey, resp, services.StaticCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
