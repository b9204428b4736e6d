package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/database"
	"github.com/localboost/localboost-backend/internal/models"
)

const (
	// DefaultQueryLimit is applied when the caller does not send a limit.
	DefaultQueryLimit = 20

	// Sort keys accepted by the business listing.
	SortByRating  = "rating"
	SortByReviews = "reviews"
	SortByName    = "name"
	SortByNewest  = "newest"
)

// RatedBusiness is a business with its derived metrics attached. Everything the
// listing, favorites, and report endpoints show is computed from these.
type RatedBusiness struct {
	models.Business

	AverageRating float64
	ReviewCount   int
	HasDeals      bool
}

// BusinessQuery filters and orders the directory.
// Category "" or "all" means no category filter; Search matches name or
// description case-insensitively; both filters are AND-combined.
type BusinessQuery struct {
	Category string
	Search   string
	Sort     string
	Limit    int
	Offset   int
}

// AverageRating returns the arithmetic mean of ratings, 0 when there are none.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// AttachMetrics joins businesses with their reviews and deals and computes the
// derived metrics. Input order is preserved so later stable sorts keep storage
// order for ties. HasDeals looks at the is_active flag only; end dates are a
// manual-deactivation concern, not checked here.
func AttachMetrics(businesses []models.Business, reviews []models.Review, deals []models.Deal) []RatedBusiness {
	ratingsByBusiness := make(map[uuid.UUID][]int)
	for _, r := range reviews {
		ratingsByBusiness[r.BusinessID] = append(ratingsByBusiness[r.BusinessID], r.Rating)
	}

	hasActiveDeal := make(map[uuid.UUID]bool)
	for _, d := range deals {
		if d.IsActive {
			hasActiveDeal[d.BusinessID] = true
		}
	}

	rated := make([]RatedBusiness, 0, len(businesses))
	for _, b := range businesses {
		ratings := ratingsByBusiness[b.ID]
		rated = append(rated, RatedBusiness{
			Business:      b,
			AverageRating: AverageRating(ratings),
			ReviewCount:   len(ratings),
			HasDeals:      hasActiveDeal[b.ID],
		})
	}
	return rated
}

// QueryBusinesses filters, sorts, and paginates the directory in memory.
// It returns the requested page plus the total size of the filtered set (the
// caller paginates against the total, not the page length). Offsets past the
// end yield an empty page, never an error. Callers that omit a limit are
// expected to pass DefaultQueryLimit; only a negative limit falls back here.
func QueryBusinesses(all []RatedBusiness, q BusinessQuery) ([]RatedBusiness, int) {
	// A limit of exactly zero is honored: the caller gets an empty page and
	// the filtered total, a cheap way to count without fetching.
	if q.Limit < 0 {
		q.Limit = DefaultQueryLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	candidates := make([]RatedBusiness, 0, len(all))
	search := strings.ToLower(q.Search)
	for _, b := range all {
		if q.Category != "" && q.Category != "all" && b.Category != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Name), search) &&
			!strings.Contains(strings.ToLower(b.Description), search) {
			continue
		}
		candidates = append(candidates, b)
	}
	total := len(candidates)

	// Stable sorts so equal keys keep storage order.
	switch q.Sort {
	case SortByReviews:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].ReviewCount > candidates[j].ReviewCount
		})
	case SortByName:
		sort.SliceStable(candidates, func(i, j int) bool {
			return strings.ToLower(candidates[i].Name) < strings.ToLower(candidates[j].Name)
		})
	case SortByNewest:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
		})
	default: // rating
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].AverageRating > candidates[j].AverageRating
		})
	}

	start := q.Offset
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return candidates[start:end], total
}

// LoadDirectory reads the whole directory (businesses, reviews, active-deal
// flags) and returns it with metrics attached, in storage order.
func LoadDirectory(ctx context.Context) ([]RatedBusiness, error) {
	businesses, err := LoadBusinesses(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := loadReviewRatings(ctx)
	if err != nil {
		return nil, err
	}
	deals, err := LoadDeals(ctx, false)
	if err != nil {
		return nil, err
	}
	return AttachMetrics(businesses, reviews, deals), nil
}

// LoadBusinesses returns every business in storage order.
func LoadBusinesses(ctx context.Context) ([]models.Business, error) {
	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT id, created_at, name, description, category, address,
		       COALESCE(phone, ''), COALESCE(email, ''), COALESCE(website, ''),
		       COALESCE(image_url, ''), COALESCE(hours, ''),
		       latitude, longitude, is_verified
		FROM businesses
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []models.Business
	for rows.Next() {
		var b models.Business
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&b.ID, &b.CreatedAt, &b.Name, &b.Description, &b.Category,
			&b.Address, &b.Phone, &b.Email, &b.Website, &b.ImageURL, &b.Hours,
			&lat, &lng, &b.IsVerified); err != nil {
			return nil, err
		}
		if lat.Valid {
			b.Latitude = &lat.Float64
		}
		if lng.Valid {
			b.Longitude = &lng.Float64
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

// GetBusiness loads one business by id. Returns ErrBusinessNotFound for an
// unknown id.
func GetBusiness(ctx context.Context, id uuid.UUID) (models.Business, error) {
	var b models.Business
	var lat, lng sql.NullFloat64
	err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT id, created_at, name, description, category, address,
		       COALESCE(phone, ''), COALESCE(email, ''), COALESCE(website, ''),
		       COALESCE(image_url, ''), COALESCE(hours, ''),
		       latitude, longitude, is_verified
		FROM businesses
		WHERE id = $1
	`, id).Scan(&b.ID, &b.CreatedAt, &b.Name, &b.Description, &b.Category,
		&b.Address, &b.Phone, &b.Email, &b.Website, &b.ImageURL, &b.Hours,
		&lat, &lng, &b.IsVerified)
	if err == sql.ErrNoRows {
		return b, ErrBusinessNotFound
	}
	if err != nil {
		return b, err
	}
	if lat.Valid {
		b.Latitude = &lat.Float64
	}
	if lng.Valid {
		b.Longitude = &lng.Float64
	}
	return b, nil
}

// LoadBusinessReviews returns a business's reviews newest first, with the
// reviewer's username resolved.
func LoadBusinessReviews(ctx context.Context, businessID uuid.UUID) ([]models.Review, map[uuid.UUID]string, error) {
	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT r.id, r.created_at, r.user_id, r.business_id, r.rating,
		       COALESCE(r.title, ''), r.content, r.is_verified, r.helpful_count,
		       u.username
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.business_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`, businessID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	usernames := make(map[uuid.UUID]string)
	for rows.Next() {
		var r models.Review
		var username string
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.UserID, &r.BusinessID, &r.Rating,
			&r.Title, &r.Content, &r.IsVerified, &r.HelpfulCount, &username); err != nil {
			return nil, nil, err
		}
		usernames[r.UserID] = username
		reviews = append(reviews, r)
	}
	return reviews, usernames, rows.Err()
}

// loadReviewRatings loads the minimal review fields the metrics need.
func loadReviewRatings(ctx context.Context) ([]models.Review, error) {
	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT id, business_id, user_id, rating, created_at
		FROM reviews
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.BusinessID, &r.UserID, &r.Rating, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// LoadDeals returns deals in storage order. With activeOnly it keeps only
// deals whose is_active flag is set (the end date is deliberately ignored).
func LoadDeals(ctx context.Context, activeOnly bool) ([]models.Deal, error) {
	query := `
		SELECT id, business_id, title, description, COALESCE(discount_type, ''),
		       discount_value, COALESCE(code, ''), start_date, end_date,
		       COALESCE(terms, ''), is_active, redemption_count
		FROM deals
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY start_date ASC, id ASC`

	rows, err := database.PostgresDB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		var d models.Deal
		var value sql.NullFloat64
		var end sql.NullTime
		if err := rows.Scan(&d.ID, &d.BusinessID, &d.Title, &d.Description, &d.DiscountType,
			&value, &d.Code, &d.StartDate, &end, &d.Terms, &d.IsActive, &d.RedemptionCount); err != nil {
			return nil, err
		}
		if value.Valid {
			d.DiscountValue = &value.Float64
		}
		if end.Valid {
			t := end.Time
			d.EndDate = &t
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

// ActiveDealsForBusiness filters a deal list down to one business's active
// deals, preserving order.
func ActiveDealsForBusiness(deals []models.Deal, businessID uuid.UUID) []models.Deal {
	var out []models.Deal
	for _, d := range deals {
		if d.IsActive && d.BusinessID == businessID {
			out = append(out, d)
		}
	}
	return out
}

// CategoryCount is one row of the category listing.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LoadCategoryCounts groups the full, unfiltered collection by category.
func LoadCategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM businesses
		GROUP BY category
		ORDER BY category ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// ValidateReview checks a review submission without writing anything.
// Validation errors are returned as sentinels for the handler to map to
// statuses. Content length is counted in characters, not bytes, so multibyte
// text is measured the way the writer sees it.
func ValidateReview(ctx context.Context, businessID uuid.UUID, rating int, content string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if utf8.RuneCountInString(content) < 10 {
		return ErrReviewTooShort
	}
	if _, err := GetBusiness(ctx, businessID); err != nil {
		return err
	}
	return nil
}

// CreateReview validates and inserts a review for the given user.
func CreateReview(ctx context.Context, userID, businessID uuid.UUID, rating int, title, content string) (models.Review, error) {
	if err := ValidateReview(ctx, businessID, rating, content); err != nil {
		return models.Review{}, err
	}

	review := models.Review{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		UserID:     userID,
		BusinessID: businessID,
		Rating:     rating,
		Title:      title,
		Content:    content,
		IsVerified: true,
	}
	_, err := database.PostgresDB.ExecContext(ctx, `
		INSERT INTO reviews (id, created_at, user_id, business_id, rating, title, content, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, review.ID, review.CreatedAt, review.UserID, review.BusinessID, review.Rating,
		review.Title, review.Content, review.IsVerified)
	if err != nil {
		return models.Review{}, err
	}
	return review, nil
}
