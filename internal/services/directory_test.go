package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localboost/localboost-backend/internal/models"
)

func testBusiness(name, description, category string, createdAt time.Time) models.Business {
	return models.Business{
		ID:          uuid.New(),
		CreatedAt:   createdAt,
		Name:        name,
		Description: description,
		Category:    category,
		Address:     "1 Test St",
	}
}

func reviewsFor(b models.Business, ratings ...int) []models.Review {
	var reviews []models.Review
	for _, r := range ratings {
		reviews = append(reviews, models.Review{
			ID:         uuid.New(),
			UserID:     uuid.New(),
			BusinessID: b.ID,
			Rating:     r,
		})
	}
	return reviews
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 0.0, AverageRating([]int{}))
	assert.Equal(t, 4.0, AverageRating([]int{5, 3}))
	assert.Equal(t, 5.0, AverageRating([]int{5}))
	assert.InDelta(t, 3.6666, AverageRating([]int{5, 3, 3}), 0.001)

	// Idempotent: same input, same result.
	assert.Equal(t, AverageRating([]int{5, 3}), AverageRating([]int{5, 3}))
}

func TestAttachMetrics(t *testing.T) {
	now := time.Now()
	a := testBusiness("A", "", "food", now)
	b := testBusiness("B", "", "retail", now)

	reviews := reviewsFor(a, 5, 3)
	activeDeal := models.Deal{ID: uuid.New(), BusinessID: b.ID, IsActive: true}
	staleActive := models.Deal{ID: uuid.New(), BusinessID: a.ID, IsActive: false}

	rated := AttachMetrics([]models.Business{a, b}, reviews, []models.Deal{activeDeal, staleActive})
	require.Len(t, rated, 2)

	assert.Equal(t, 4.0, rated[0].AverageRating)
	assert.Equal(t, 2, rated[0].ReviewCount)
	assert.False(t, rated[0].HasDeals)

	assert.Equal(t, 0.0, rated[1].AverageRating)
	assert.Equal(t, 0, rated[1].ReviewCount)
	assert.True(t, rated[1].HasDeals)
}

func TestAttachMetricsIgnoresEndDate(t *testing.T) {
	now := time.Now()
	b := testBusiness("B", "", "food", now)
	past := now.Add(-48 * time.Hour)

	// Active flag set, end date long gone: still counts.
	deal := models.Deal{ID: uuid.New(), BusinessID: b.ID, IsActive: true, EndDate: &past}
	rated := AttachMetrics([]models.Business{b}, nil, []models.Deal{deal})
	assert.True(t, rated[0].HasDeals)
}

func buildDirectory(t *testing.T) []RatedBusiness {
	t.Helper()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	cafe := testBusiness("The Daily Grind", "Specialty coffee roastery and cafe", "food", base)
	books := testBusiness("Page Turner Books", "Independent bookstore", "retail", base.Add(time.Minute))
	gym := testBusiness("Peak Performance Gym", "Fitness facility with coffee bar", "health", base.Add(2*time.Minute))
	arcade := testBusiness("Pixel Arcade", "Retro arcade and gaming lounge", "entertainment", base.Add(3*time.Minute))

	var reviews []models.Review
	reviews = append(reviews, reviewsFor(cafe, 5, 4)...)   // 4.5
	reviews = append(reviews, reviewsFor(books, 5, 4)...)  // 4.5, tie with cafe
	reviews = append(reviews, reviewsFor(gym, 5, 5, 3)...) // 4.33
	// arcade unreviewed: 0.0

	return AttachMetrics([]models.Business{cafe, books, gym, arcade}, reviews, nil)
}

func TestQueryCategoryFilter(t *testing.T) {
	all := buildDirectory(t)

	results, total := QueryBusinesses(all, BusinessQuery{Category: "food", Limit: DefaultQueryLimit})
	require.Equal(t, 1, total)
	assert.Equal(t, "The Daily Grind", results[0].Name)

	// "all" and "" disable the filter.
	_, total = QueryBusinesses(all, BusinessQuery{Category: "all", Limit: DefaultQueryLimit})
	assert.Equal(t, 4, total)
	_, total = QueryBusinesses(all, BusinessQuery{Limit: DefaultQueryLimit})
	assert.Equal(t, 4, total)
}

func TestQuerySearchMatchesNameOrDescription(t *testing.T) {
	all := buildDirectory(t)

	// "coffee" appears in the cafe's description and the gym's description.
	results, total := QueryBusinesses(all, BusinessQuery{Search: "COFFEE", Limit: DefaultQueryLimit})
	require.Equal(t, 2, total)
	names := []string{results[0].Name, results[1].Name}
	assert.Contains(t, names, "The Daily Grind")
	assert.Contains(t, names, "Peak Performance Gym")

	// Name match, case-insensitive.
	results, total = QueryBusinesses(all, BusinessQuery{Search: "pixel", Limit: DefaultQueryLimit})
	require.Equal(t, 1, total)
	assert.Equal(t, "Pixel Arcade", results[0].Name)
}

func TestQueryFiltersAreANDCombined(t *testing.T) {
	all := buildDirectory(t)

	// "coffee" matches food+health, category narrows to health.
	results, total := QueryBusinesses(all, BusinessQuery{Category: "health", Search: "coffee", Limit: DefaultQueryLimit})
	require.Equal(t, 1, total)
	assert.Equal(t, "Peak Performance Gym", results[0].Name)

	_, total = QueryBusinesses(all, BusinessQuery{Category: "retail", Search: "coffee", Limit: DefaultQueryLimit})
	assert.Equal(t, 0, total)
}

func TestQuerySortRatingIsDefaultAndStable(t *testing.T) {
	all := buildDirectory(t)

	results, _ := QueryBusinesses(all, BusinessQuery{Limit: DefaultQueryLimit})
	require.Len(t, results, 4)

	// Cafe and bookstore tie at 4.5; cafe is first in storage order and must
	// stay ahead.
	assert.Equal(t, "The Daily Grind", results[0].Name)
	assert.Equal(t, "Page Turner Books", results[1].Name)
	assert.Equal(t, "Peak Performance Gym", results[2].Name)
	assert.Equal(t, "Pixel Arcade", results[3].Name)
}

func TestQuerySortReviews(t *testing.T) {
	all := buildDirectory(t)

	results, _ := QueryBusinesses(all, BusinessQuery{Sort: SortByReviews, Limit: DefaultQueryLimit})
	require.Len(t, results, 4)
	assert.Equal(t, "Peak Performance Gym", results[0].Name) // 3 reviews
	// Cafe and bookstore tie at 2; storage order preserved.
	assert.Equal(t, "The Daily Grind", results[1].Name)
	assert.Equal(t, "Page Turner Books", results[2].Name)
	assert.Equal(t, "Pixel Arcade", results[3].Name)
}

func TestQuerySortName(t *testing.T) {
	all := buildDirectory(t)

	results, _ := QueryBusinesses(all, BusinessQuery{Sort: SortByName, Limit: DefaultQueryLimit})
	require.Len(t, results, 4)
	assert.Equal(t, "Page Turner Books", results[0].Name)
	assert.Equal(t, "Peak Performance Gym", results[1].Name)
	assert.Equal(t, "Pixel Arcade", results[2].Name)
	assert.Equal(t, "The Daily Grind", results[3].Name)
}

func TestQuerySortNewest(t *testing.T) {
	all := buildDirectory(t)

	results, _ := QueryBusinesses(all, BusinessQuery{Sort: SortByNewest, Limit: DefaultQueryLimit})
	require.Len(t, results, 4)
	assert.Equal(t, "Pixel Arcade", results[0].Name)
	assert.Equal(t, "The Daily Grind", results[3].Name)
}

func TestQueryPagination(t *testing.T) {
	all := buildDirectory(t)

	// Total reflects the filtered set, not the page.
	results, total := QueryBusinesses(all, BusinessQuery{Limit: 2})
	assert.Equal(t, 4, total)
	assert.Len(t, results, 2)

	results, total = QueryBusinesses(all, BusinessQuery{Limit: 2, Offset: 2})
	assert.Equal(t, 4, total)
	assert.Len(t, results, 2)

	// Offset past the end: empty page, same total, no error.
	results, total = QueryBusinesses(all, BusinessQuery{Limit: 2, Offset: 100})
	assert.Equal(t, 4, total)
	assert.Empty(t, results)

	// Page straddling the end is clamped.
	results, _ = QueryBusinesses(all, BusinessQuery{Limit: 3, Offset: 3})
	assert.Len(t, results, 1)
}

func TestQueryDefaults(t *testing.T) {
	var all []RatedBusiness
	base := time.Now()
	for i := 0; i < 30; i++ {
		all = append(all, RatedBusiness{Business: testBusiness("B", "", "food", base)})
	}

	results, total := QueryBusinesses(all, BusinessQuery{Limit: DefaultQueryLimit})
	assert.Equal(t, 30, total)
	assert.Len(t, results, DefaultQueryLimit)

	// Negative limit and offset fall back to defaults.
	results, _ = QueryBusinesses(all, BusinessQuery{Limit: -5, Offset: -3})
	assert.Len(t, results, DefaultQueryLimit)
}

func TestQueryLimitZeroCountsWithoutFetching(t *testing.T) {
	var all []RatedBusiness
	base := time.Now()
	for i := 0; i < 5; i++ {
		all = append(all, RatedBusiness{Business: testBusiness("B", "", "food", base)})
	}

	// An explicit zero limit is a count request: empty page, full total.
	results, total := QueryBusinesses(all, BusinessQuery{Limit: 0})
	assert.Equal(t, 5, total)
	assert.Empty(t, results)

	results, total = QueryBusinesses(all, BusinessQuery{Limit: 0, Offset: 2})
	assert.Equal(t, 5, total)
	assert.Empty(t, results)
}

func TestValidateReviewCountsCharacters(t *testing.T) {
	// Nine characters in twenty-seven bytes; a byte count would let it
	// through, a character count must not.
	err := ValidateReview(context.Background(), uuid.New(), 5, "ありがとう存じます")
	assert.ErrorIs(t, err, ErrReviewTooShort)
}

func TestValidateReviewRating(t *testing.T) {
	for _, rating := range []int{0, -1, 6, 100} {
		err := ValidateReview(context.Background(), uuid.New(), rating, "plenty long content")
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
}

func TestActiveDealsForBusiness(t *testing.T) {
	businessID := uuid.New()
	deals := []models.Deal{
		{ID: uuid.New(), BusinessID: businessID, Title: "first", IsActive: true},
		{ID: uuid.New(), BusinessID: businessID, Title: "inactive", IsActive: false},
		{ID: uuid.New(), BusinessID: uuid.New(), Title: "other", IsActive: true},
		{ID: uuid.New(), BusinessID: businessID, Title: "second", IsActive: true},
	}

	active := ActiveDealsForBusiness(deals, businessID)
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Title)
	assert.Equal(t, "second", active[1].Title)
}
