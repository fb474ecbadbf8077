package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartMarket/domain"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{DB: db}
}

func (r *CartRepository) LoadCart(ctx context.Context, userKey string) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("context error: %w", err)
	}

	var cart domain.Cart
	err := r.DB.WithContext(ctx).Where("user_key = ?", userKey).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Cart{UserKey: userKey, Items: []domain.CartItem{}}, nil
		}
		return domain.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	return cart, nil
}

func (r *CartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_key"}},
			UpdateAll: true,
		},
	).Create(&cart).Error; err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}

	return nil
}
