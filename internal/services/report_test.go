package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localboost/localboost-backend/internal/models"
)

func TestBuildReportMeanOfMeans(t *testing.T) {
	now := time.Now()
	a := testBusiness("A", "", "food", now)
	b := testBusiness("B", "", "food", now.Add(time.Minute))

	rated := AttachMetrics([]models.Business{a, b}, reviewsFor(a, 5, 3), nil)
	report := BuildReport(rated, nil, ReportOptions{})

	// A averages 4.0, B has no reviews (0.0); the fleet average is the mean
	// of per-business means, not review-weighted.
	assert.Equal(t, 2, report.Summary.TotalBusinesses)
	assert.Equal(t, 2, report.Summary.TotalReviews)
	assert.Equal(t, 2.0, report.Summary.AverageRating)
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(nil, nil, ReportOptions{})

	assert.Equal(t, 0, report.Summary.TotalBusinesses)
	assert.Equal(t, 0, report.Summary.TotalReviews)
	assert.Equal(t, 0.0, report.Summary.AverageRating)
	assert.Empty(t, report.CategoryBreakdown)
	assert.Empty(t, report.TopRated)
	assert.Empty(t, report.MostReviewed)
}

func TestBuildReportCategoryFilter(t *testing.T) {
	now := time.Now()
	food := testBusiness("Cafe", "", "food", now)
	retail := testBusiness("Shop", "", "retail", now.Add(time.Minute))

	rated := AttachMetrics([]models.Business{food, retail},
		append(reviewsFor(food, 4), reviewsFor(retail, 2)...), nil)

	report := BuildReport(rated, nil, ReportOptions{Category: "food"})
	assert.Equal(t, 1, report.Summary.TotalBusinesses)
	assert.Equal(t, 1, report.Summary.TotalReviews)
	assert.Equal(t, 4.0, report.Summary.AverageRating)
	require.Contains(t, report.CategoryBreakdown, "food")
	assert.NotContains(t, report.CategoryBreakdown, "retail")
}

func TestBuildReportActiveDealsIgnoreCategoryFilter(t *testing.T) {
	now := time.Now()
	food := testBusiness("Cafe", "", "food", now)
	retail := testBusiness("Shop", "", "retail", now.Add(time.Minute))
	rated := AttachMetrics([]models.Business{food, retail}, nil, nil)

	deals := []models.Deal{
		{ID: uuid.New(), BusinessID: food.ID, IsActive: true},
		{ID: uuid.New(), BusinessID: retail.ID, IsActive: true},
		{ID: uuid.New(), BusinessID: retail.ID, IsActive: false},
	}

	// The businesses are category-filtered but the deal count spans the
	// whole collection.
	report := BuildReport(rated, deals, ReportOptions{Category: "food"})
	assert.Equal(t, 1, report.Summary.TotalBusinesses)
	assert.Equal(t, 2, report.Summary.ActiveDeals)
}

func TestBuildReportCategoryBreakdown(t *testing.T) {
	now := time.Now()
	a := testBusiness("A", "", "food", now)
	b := testBusiness("B", "", "food", now.Add(time.Minute))
	c := testBusiness("C", "", "health", now.Add(2*time.Minute))

	reviews := append(reviewsFor(a, 5, 4), reviewsFor(b, 2)...) // a=4.5, b=2.0
	reviews = append(reviews, reviewsFor(c, 3, 3, 3)...)        // c=3.0

	rated := AttachMetrics([]models.Business{a, b, c}, reviews, nil)
	report := BuildReport(rated, nil, ReportOptions{})

	food := report.CategoryBreakdown["food"]
	assert.Equal(t, 2, food.Count)
	assert.Equal(t, 3, food.Reviews)
	assert.InDelta(t, 6.5, food.TotalRating, 0.001)
	assert.Equal(t, 3.3, food.AvgRating) // 6.5/2 rounded to 1 decimal

	health := report.CategoryBreakdown["health"]
	assert.Equal(t, 1, health.Count)
	assert.Equal(t, 3, health.Reviews)
	assert.Equal(t, 3.0, health.AvgRating)
}

func TestBuildReportRankings(t *testing.T) {
	base := time.Now()
	var businesses []models.Business
	var reviews []models.Review
	for i := 0; i < 12; i++ {
		b := testBusiness(string(rune('A'+i)), "", "food", base.Add(time.Duration(i)*time.Minute))
		businesses = append(businesses, b)
		// Business i gets i reviews of rating (i%5)+1.
		for j := 0; j < i; j++ {
			reviews = append(reviews, models.Review{
				ID: uuid.New(), UserID: uuid.New(), BusinessID: b.ID, Rating: (i % 5) + 1,
			})
		}
	}

	rated := AttachMetrics(businesses, reviews, nil)
	report := BuildReport(rated, nil, ReportOptions{})

	// Rankings are capped at ten.
	assert.Len(t, report.TopRated, 10)
	assert.Len(t, report.MostReviewed, 10)

	// most_reviewed leads with the business with 11 reviews.
	assert.Equal(t, 11, report.MostReviewed[0].Reviews)
	for i := 1; i < len(report.MostReviewed); i++ {
		assert.GreaterOrEqual(t, report.MostReviewed[i-1].Reviews, report.MostReviewed[i].Reviews)
	}
	for i := 1; i < len(report.TopRated); i++ {
		assert.GreaterOrEqual(t, report.TopRated[i-1].Rating, report.TopRated[i].Rating)
	}
}

func TestBuildReportRankingStability(t *testing.T) {
	now := time.Now()
	first := testBusiness("First", "", "food", now)
	second := testBusiness("Second", "", "food", now.Add(time.Minute))

	// Equal average rating; storage order decides.
	reviews := append(reviewsFor(first, 4), reviewsFor(second, 4)...)
	rated := AttachMetrics([]models.Business{first, second}, reviews, nil)
	report := BuildReport(rated, nil, ReportOptions{})

	require.Len(t, report.TopRated, 2)
	assert.Equal(t, "First", report.TopRated[0].Name)
	assert.Equal(t, "Second", report.TopRated[1].Name)
}

func TestBuildReportEchoesOptions(t *testing.T) {
	report := BuildReport(nil, nil, ReportOptions{
		Category:       "health",
		DateRange:      "month",
		IncludeReviews: true,
		IncludeDeals:   false,
	})

	assert.Equal(t, "health", report.Filters.Category)
	assert.Equal(t, "month", report.Filters.DateRange)
	assert.True(t, report.Filters.IncludeReviews)
	assert.False(t, report.Filters.IncludeDeals)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestBuildReportDefaultsFilterEcho(t *testing.T) {
	report := BuildReport(nil, nil, ReportOptions{})
	assert.Equal(t, "all", report.Filters.Category)
	assert.Equal(t, "all", report.Filters.DateRange)
}

func TestBuildReportRecomputesAfterNewReview(t *testing.T) {
	now := time.Now()
	a := testBusiness("A", "", "food", now)
	b := testBusiness("B", "", "food", now.Add(time.Minute))

	reviews := reviewsFor(a, 5, 3)
	rated := AttachMetrics([]models.Business{a, b}, reviews, nil)
	before := BuildReport(rated, nil, ReportOptions{})
	assert.Equal(t, 2.0, before.Summary.AverageRating)

	// A review for B only shifts B's contribution to the mean of means.
	reviews = append(reviews, reviewsFor(b, 4)...)
	rated = AttachMetrics([]models.Business{a, b}, reviews, nil)
	after := BuildReport(rated, nil, ReportOptions{})
	assert.Equal(t, 3, after.Summary.TotalReviews)
	assert.Equal(t, 4.0, after.Summary.AverageRating) // (4.0 + 4.0) / 2
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.3, round1(3.25))
	assert.Equal(t, 3.2, round1(3.24))
	assert.Equal(t, 4.17, round2(4.1666))
}
