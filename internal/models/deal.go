package models

import (
	"time"

	"github.com/google/uuid"
)

// Discount types for deals.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
	DiscountBOGO       = "bogo"
)

type Deal struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"business_id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	DiscountType string `json:"discount_type"`
	// DiscountValue is meaningful for percentage and fixed discounts only;
	// nil for bogo.
	DiscountValue *float64 `json:"discount_value"`

	Code string `json:"code,omitempty"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Terms     string     `json:"terms,omitempty"`

	// IsActive is the only signal consulted when listing deals; a deal whose
	// end date has passed still counts until its flag is cleared.
	IsActive bool `json:"is_active"`

	// RedemptionCount is stored and serialized but nothing increments it yet.
	RedemptionCount int `json:"redemption_count"`
}
