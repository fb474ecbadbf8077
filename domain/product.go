package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id           BIGSERIAL PRIMARY KEY,
//     name         TEXT NOT NULL,
//     description  TEXT,
//     category     TEXT,
//     image        TEXT,
//     price        NUMERIC,
//     rating       NUMERIC,
//     reviews      BIGINT,
//     stock        BIGINT,
//     tags         JSONB,
//     featured     BOOLEAN DEFAULT FALSE,
//     discount     NUMERIC DEFAULT 0,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrReadOnlyCatalog = errors.New("catalog source is read-only")
)

type Product struct {
	ID          uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string                      `gorm:"column:name;type:text;not null" json:"name"`
	Description string                      `gorm:"column:description;type:text" json:"description"`
	Category    string                      `gorm:"column:category;type:text;index" json:"category"`
	Image       string                      `gorm:"column:image;type:text" json:"image,omitempty"`
	Price       float64                     `gorm:"column:price" json:"price"`
	Rating      float64                     `gorm:"column:rating" json:"rating"`
	Reviews     int                         `gorm:"column:reviews" json:"reviews"`
	Stock       int                         `gorm:"column:stock" json:"stock"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Featured    bool                        `gorm:"column:featured;default:false" json:"featured"`
	Discount    float64                     `gorm:"column:discount;default:0" json:"discount"` // percent, 0 = none
	CreatedAt   time.Time                   `gorm:"column:created_at" json:"created_at,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// HasTag reports whether tag is one of the product's tags (exact match).
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ProductFilter narrows and orders the catalog. Zero values mean "no filter",
// except MaxPrice which defaults to 10000.
type ProductFilter struct {
	Category  string  `query:"category"`
	MinPrice  float64 `query:"min_price"`
	MaxPrice  float64 `query:"max_price"`
	MinRating float64 `query:"min_rating"`
	SortBy    string  `query:"sort_by"`
}

// CatalogStats summarises a catalog snapshot.
type CatalogStats struct {
	TotalProducts int     `json:"total_products"`
	Categories    int     `json:"categories"`
	AveragePrice  float64 `json:"average_price"`
	AverageRating float64 `json:"average_rating"`
	TotalStock    int     `json:"total_stock"`
}
