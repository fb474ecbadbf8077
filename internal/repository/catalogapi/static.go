package catalogapi

import (
	"context"

	"smartMarket/domain"
)

// StaticCatalog serves a fixed product list.
type StaticCatalog struct {
	products []domain.Product
}

func NewStaticCatalog(products []domain.Product) *StaticCatalog {
	return &StaticCatalog{products: products}
}

func (s *StaticCatalog) FindAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// FallbackProducts is the built-in storefront catalog served when no other source
// is available.
func FallbackProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "iPhone 15 Pro Max",
			Price:       1299.99,
			Category:    "electronics",
			Image:       "https://images.unsplash.com/photo-1695048133142-1a20484d2569?w=300&h=200&fit=crop",
			Rating:      4.8,
			Reviews:     1284,
			Stock:       50,
			Description: "Latest Apple smartphone with A17 Pro chip",
			Tags:        []string{"apple", "smartphone", "premium"},
			Featured:    true,
		},
		{
			ID:          2,
			Name:        "MacBook Pro M3",
			Price:       2399.99,
			Category:    "electronics",
			Image:       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=300&h=200&fit=crop",
			Rating:      4.9,
			Reviews:     892,
			Stock:       25,
			Description: "Professional laptop with M3 chip",
			Tags:        []string{"apple", "laptop", "professional"},
		},
		{
			ID:          3,
			Name:        "Samsung Galaxy S24",
			Price:       999.99,
			Category:    "electronics",
			Image:       "https://images.unsplash.com/photo-1610945265064-0e34e5519bbf?w=300&h=200&fit=crop",
			Rating:      4.7,
			Reviews:     1567,
			Stock:       100,
			Description: "Android flagship with AI features",
			Tags:        []string{"samsung", "android", "smartphone"},
		},
		{
			ID:          4,
			Name:        "Nike Air Max 270",
			Price:       149.99,
			Category:    "fashion",
			Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=300&h=200&fit=crop",
			Rating:      4.6,
			Reviews:     2345,
			Stock:       200,
			Description: "Comfortable running shoes",
			Tags:        []string{"nike", "shoes", "sports"},
		},
		{
			ID:          5,
			Name:        "Sony WH-1000XM5",
			Price:       399.99,
			Category:    "electronics",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=200&fit=crop",
			Rating:      4.8,
			Reviews:     1789,
			Stock:       75,
			Description: "Noise cancelling headphones",
			Tags:        []string{"sony", "headphones", "audio"},
		},
		{
			ID:          6,
			Name:        "Dyson V15 Detect",
			Price:       699.99,
			Category:    "home",
			Image:       "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=300&h=200&fit=crop",
			Rating:      4.7,
			Reviews:     987,
			Stock:       40,
			Description: "Cordless vacuum cleaner",
			Tags:        []string{"dyson", "home", "cleaning"},
		},
	}
}
