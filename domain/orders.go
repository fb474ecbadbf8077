package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var (
	ErrCartEmpty     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidOrder  = errors.New("payment method and shipping address are required")
)

const (
	OrderStatusProcessing = "processing"
)

// CartItem is a snapshot of the product taken when it was added, so later catalog
// price changes do not reprice an open cart.
type CartItem struct {
	ProductID uint64    `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Image     string    `json:"image,omitempty"`
	Price     float64   `json:"price"`
	Discount  float64   `json:"discount"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// UnitPrice is the price after the item's discount.
func (i CartItem) UnitPrice() float64 {
	if i.Discount > 0 {
		return i.Price * (1 - i.Discount/100)
	}
	return i.Price
}

// CREATE TABLE public.carts (
//     user_key    TEXT PRIMARY KEY,
//     items       JSONB,
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Cart struct {
	UserKey   string                        `gorm:"column:user_key;primaryKey" json:"-"`
	Items     datatypes.JSONSlice[CartItem] `gorm:"column:items" json:"items"`
	UpdatedAt time.Time                     `gorm:"column:updated_at" json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartSummary struct {
	Items           int     `gorm:"column:items" json:"items"`
	TotalItems      int     `gorm:"column:total_items" json:"total_items"`
	Subtotal        float64 `gorm:"column:subtotal" json:"subtotal"`
	Shipping        float64 `gorm:"column:shipping" json:"shipping"`
	Tax             float64 `gorm:"column:tax" json:"tax"`
	Total           float64 `gorm:"column:total" json:"total"`
	HasFreeShipping bool    `gorm:"column:has_free_shipping" json:"has_free_shipping"`
}

// CartView is a cart with its totals, as shown to the shopper.
type CartView struct {
	Items   []CartItem  `json:"items"`
	Summary CartSummary `json:"summary"`
}

type CategoryShare struct {
	Category string  `json:"category"`
	Items    int     `json:"items"`
	Value    float64 `json:"value"`
}

type FrequentItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// CartAnalytics values use list prices, not discounted ones.
type CartAnalytics struct {
	TotalSpent           float64         `json:"total_spent"`
	AverageItemPrice     float64         `json:"average_item_price"`
	CategoryDistribution []CategoryShare `json:"category_distribution"`
	FrequentItems        []FrequentItem  `json:"frequent_items"`
}

// CREATE TABLE public.orders (
//     id                  TEXT PRIMARY KEY,
//     user_key            TEXT NOT NULL,
//     items               JSONB,
//     summary_*           (flattened CartSummary columns),
//     payment_method      TEXT,
//     shipping_address    TEXT,
//     status              TEXT,
//     created_at          TIMESTAMPTZ,
//     estimated_delivery  TIMESTAMPTZ
// );

type Order struct {
	ID                string                        `gorm:"column:id;primaryKey" json:"id"`
	UserKey           string                        `gorm:"column:user_key;index" json:"-"`
	Items             datatypes.JSONSlice[CartItem] `gorm:"column:items" json:"items"`
	Summary           CartSummary                   `gorm:"embedded;embeddedPrefix:summary_" json:"summary"`
	PaymentMethod     string                        `gorm:"column:payment_method" json:"payment_method"`
	ShippingAddress   string                        `gorm:"column:shipping_address" json:"shipping_address"`
	Status            string                        `gorm:"column:status" json:"status"`
	CreatedAt         time.Time                     `gorm:"column:created_at" json:"date"`
	EstimatedDelivery time.Time                     `gorm:"column:estimated_delivery" json:"estimated_delivery"`
}

func (Order) TableName() string {
	return "orders"
}
