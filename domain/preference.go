package domain

import (
	"errors"
	"time"
)

// ErrMalformedProfile is returned by preference stores when stored data cannot be decoded.
var ErrMalformedProfile = errors.New("malformed preference profile")

const (
	DefaultPriceMin = 0
	DefaultPriceMax = 5000
)

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PreferenceProfile is the per-user record of category interests, price comfort
// range and interaction history.
type PreferenceProfile struct {
	Categories          []string   `json:"categories"`
	PriceRange          PriceRange `json:"price_range"`
	Brands              []string   `json:"brands"` // stored, not used for scoring
	ViewedProductIDs    []uint64   `json:"viewed_products"`
	PurchasedProductIDs []uint64   `json:"purchased_products"`
}

func (p PreferenceProfile) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

type InteractionType string

const (
	InteractionView          InteractionType = "view"
	InteractionPurchase      InteractionType = "purchase"
	InteractionCategoryClick InteractionType = "category_click"
)

// Interaction is a single user event that mutates a PreferenceProfile.
// ProductID is set for view/purchase, Category for category_click.
type Interaction struct {
	Type       InteractionType `json:"type"`
	ProductID  uint64          `json:"product_id,omitempty"`
	Category   string          `json:"category,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
