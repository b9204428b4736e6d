package services

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/models"
)

const rankingSize = 10

// ReportOptions are the report request knobs. DateRange, IncludeReviews, and
// IncludeDeals are accepted and echoed back but do not change the computed
// sections; the computation has never consumed them and downstream consumers
// rely on the current numbers.
type ReportOptions struct {
	Type           string
	Category       string
	DateRange      string
	IncludeReviews bool
	IncludeDeals   bool
}

type ReportFilters struct {
	Category       string `json:"category" bson:"category"`
	DateRange      string `json:"date_range" bson:"date_range"`
	IncludeReviews bool   `json:"include_reviews" bson:"include_reviews"`
	IncludeDeals   bool   `json:"include_deals" bson:"include_deals"`
}

type ReportSummary struct {
	TotalBusinesses int     `json:"total_businesses" bson:"total_businesses"`
	TotalReviews    int     `json:"total_reviews" bson:"total_reviews"`
	AverageRating   float64 `json:"average_rating" bson:"average_rating"`
	ActiveDeals     int     `json:"active_deals" bson:"active_deals"`
}

type CategoryStats struct {
	Count       int     `json:"count" bson:"count"`
	TotalRating float64 `json:"total_rating" bson:"total_rating"`
	Reviews     int     `json:"reviews" bson:"reviews"`
	AvgRating   float64 `json:"avg_rating" bson:"avg_rating"`
}

type RankedBusiness struct {
	ID       uuid.UUID `json:"id" bson:"id"`
	Name     string    `json:"name" bson:"name"`
	Category string    `json:"category" bson:"category"`
	Rating   float64   `json:"rating" bson:"rating"`
	Reviews  int       `json:"reviews" bson:"reviews"`
}

type Report struct {
	GeneratedAt       time.Time                `json:"generated_at" bson:"generated_at"`
	Filters           ReportFilters            `json:"filters" bson:"filters"`
	Summary           ReportSummary            `json:"summary" bson:"summary"`
	CategoryBreakdown map[string]CategoryStats `json:"category_breakdown" bson:"category_breakdown"`
	TopRated          []RankedBusiness         `json:"top_rated" bson:"top_rated"`
	MostReviewed      []RankedBusiness         `json:"most_reviewed" bson:"most_reviewed"`
}

// BuildReport computes the aggregate report over the directory snapshot.
//
// The fleet-wide average is a mean of per-business means: a business with two
// reviews weighs the same as one with two hundred. ActiveDeals counts the
// whole deal collection even when the businesses are category-filtered; both
// behaviors are long-standing and consumers depend on them.
func BuildReport(all []RatedBusiness, deals []models.Deal, opts ReportOptions) Report {
	filtered := make([]RatedBusiness, 0, len(all))
	for _, b := range all {
		if opts.Category != "" && opts.Category != "all" && b.Category != opts.Category {
			continue
		}
		filtered = append(filtered, b)
	}

	totalReviews := 0
	ratingSum := 0.0
	breakdown := make(map[string]CategoryStats)
	for _, b := range filtered {
		totalReviews += b.ReviewCount
		ratingSum += b.AverageRating

		stats := breakdown[b.Category]
		stats.Count++
		stats.TotalRating += b.AverageRating
		stats.Reviews += b.ReviewCount
		breakdown[b.Category] = stats
	}
	for cat, stats := range breakdown {
		stats.AvgRating = round1(stats.TotalRating / float64(stats.Count))
		breakdown[cat] = stats
	}

	avgRating := 0.0
	if len(filtered) > 0 {
		avgRating = ratingSum / float64(len(filtered))
	}

	activeDeals := 0
	for _, d := range deals {
		if d.IsActive {
			activeDeals++
		}
	}

	category := opts.Category
	if category == "" {
		category = "all"
	}
	dateRange := opts.DateRange
	if dateRange == "" {
		dateRange = "all"
	}

	return Report{
		GeneratedAt: time.Now().UTC(),
		Filters: ReportFilters{
			Category:       category,
			DateRange:      dateRange,
			IncludeReviews: opts.IncludeReviews,
			IncludeDeals:   opts.IncludeDeals,
		},
		Summary: ReportSummary{
			TotalBusinesses: len(filtered),
			TotalReviews:    totalReviews,
			AverageRating:   round2(avgRating),
			ActiveDeals:     activeDeals,
		},
		CategoryBreakdown: breakdown,
		TopRated:          rankBusinesses(filtered, byRating),
		MostReviewed:      rankBusinesses(filtered, byReviews),
	}
}

type rankKey int

const (
	byRating rankKey = iota
	byReviews
)

// rankBusinesses returns the top entries by the given key, stable for ties.
func rankBusinesses(businesses []RatedBusiness, key rankKey) []RankedBusiness {
	sorted := make([]RatedBusiness, len(businesses))
	copy(sorted, businesses)
	sort.SliceStable(sorted, func(i, j int) bool {
		if key == byReviews {
			return sorted[i].ReviewCount > sorted[j].ReviewCount
		}
		return sorted[i].AverageRating > sorted[j].AverageRating
	})
	if len(sorted) > rankingSize {
		sorted = sorted[:rankingSize]
	}

	ranked := make([]RankedBusiness, 0, len(sorted))
	for _, b := range sorted {
		ranked = append(ranked, RankedBusiness{
			ID:       b.ID,
			Name:     b.Name,
			Category: b.Category,
			Rating:   round1(b.AverageRating),
			Reviews:  b.ReviewCount,
		})
	}
	return ranked
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
