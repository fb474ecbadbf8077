package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"smartMarket/domain"
)

// AutoMigrate creates or updates the tables owned by this package.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Product{}, &preferenceRow{}, &domain.Cart{}, &domain.Order{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// SeedProducts inserts products when the products table is empty.
func SeedProducts(db *gorm.DB, products []domain.Product) error {
	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 || len(products) == 0 {
		return nil
	}

	seed := make([]domain.Product, len(products))
	copy(seed, products)
	if err := db.Create(&seed).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	return nil
}
