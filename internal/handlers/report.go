package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/localboost/localboost-backend/internal/services"
)

// GenerateReportRequest represents the report request knobs
type GenerateReportRequest struct {
	Type           string `json:"type"`
	Category       string `json:"category"`
	DateRange      string `json:"date_range"`
	IncludeReviews bool   `json:"include_reviews"`
	IncludeDeals   bool   `json:"include_deals"`
}

// RecentReportsResponse represents previously generated reports, newest first
type RecentReportsResponse struct {
	Reports []services.Report `json:"reports"`
	Total   int               `json:"total"`
}

// GenerateReport handles computing an aggregate report over the directory.
// The finished report is archived for the recent-reports listing; archival
// failure does not fail the request.
func GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req GenerateReportRequest
	if r.Body != nil {
		// An empty body means a report over everything with defaults
		json.NewDecoder(r.Body).Decode(&req)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	directory, err := services.LoadDirectory(ctx)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to generate report"})
		return
	}

	deals, err := services.LoadDeals(ctx, false)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to generate report"})
		return
	}

	report := services.BuildReport(directory, deals, services.ReportOptions{
		Type:           req.Type,
		Category:       req.Category,
		DateRange:      req.DateRange,
		IncludeReviews: req.IncludeReviews,
		IncludeDeals:   req.IncludeDeals,
	})

	if err := services.ArchiveReport(ctx, report); err != nil {
		log.Printf("⚠️ Failed to archive report: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// GetRecentReports handles listing previously generated reports from the
// archive
func GetRecentReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	reports, err := services.RecentReports(ctx, limit)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to load reports"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RecentReportsResponse{
		Reports: reports,
		Total:   len(reports),
	})
}
