package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartMarket/domain"
)

// CREATE TABLE public.preference_profiles (
//     user_key    TEXT PRIMARY KEY,
//     profile     JSONB NOT NULL,
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

type preferenceRow struct {
	UserKey   string    `gorm:"column:user_key;primaryKey"`
	Profile   []byte    `gorm:"column:profile"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (preferenceRow) TableName() string {
	return "preference_profiles"
}

type PreferenceRepository struct {
	DB *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

// LoadProfile returns (nil, nil) when no profile is stored for userKey.
func (r *PreferenceRepository) LoadProfile(ctx context.Context, userKey string) (*domain.PreferenceProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row preferenceRow
	err := r.DB.WithContext(ctx).Where("user_key = ?", userKey).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load preference profile: %w", err)
	}

	var profile domain.PreferenceProfile
	if err := json.Unmarshal(row.Profile, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedProfile, err)
	}

	return &profile, nil
}

func (r *PreferenceRepository) SaveProfile(ctx context.Context, userKey string, profile domain.PreferenceProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal preference profile: %w", err)
	}

	row := preferenceRow{
		UserKey:   userKey,
		Profile:   raw,
		UpdatedAt: time.Now(),
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_key"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert preference profile: %w", err)
	}

	return nil
}
