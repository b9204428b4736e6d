package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Business categories. The directory only knows these five.
const (
	CategoryFood          = "food"
	CategoryRetail        = "retail"
	CategoryServices      = "services"
	CategoryEntertainment = "entertainment"
	CategoryHealth        = "health"
)

// ValidCategory reports whether c is one of the known business categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryFood, CategoryRetail, CategoryServices, CategoryEntertainment, CategoryHealth:
		return true
	}
	return false
}

type Business struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Address     string `json:"address"`

	// Contact fields (all optional)
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`

	ImageURL string `json:"image_url,omitempty"`

	// Hours is the raw serialized operating-hours map (day -> "HH:MM-HH:MM" or
	// "closed") exactly as stored; use ParseHours to read it.
	Hours string `json:"-"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	IsVerified bool `json:"is_verified"`
}

// ParseHours decodes a stored operating-hours value. An empty value yields nil,
// matching the original's null hours for businesses that never set them.
func ParseHours(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var hours map[string]string
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil
	}
	return hours
}

// EncodeHours serializes an operating-hours map for storage. The encoding must
// round-trip through ParseHours unchanged.
func EncodeHours(hours map[string]string) (string, error) {
	if hours == nil {
		return "", nil
	}
	data, err := json.Marshal(hours)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
