package recommender

import (
	"context"
	"fmt"

	"smartMarket/domain"
	"smartMarket/pkg/logger"
)

// DebugRecommend returns the same ranking as Recommend with every score component.
func (e *Engine) DebugRecommend(
	ctx context.Context,
	userKey string,
	count int,
) ([]domain.DebugRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	catalog := e.loadCatalog(ctx)
	profile := e.Profile(ctx, userKey)

	recs := e.scorer.RankDebug(profile, catalog, count)

	logger.Debug("recommend_debug",
		"trace_id", TraceIDFromContext(ctx),
		"user_key", userKey,
		"categories", profile.Categories,
		"price_min", profile.PriceRange.Min,
		"price_max", profile.PriceRange.Max,
		"viewed", len(profile.ViewedProductIDs),
		"purchased", len(profile.PurchasedProductIDs),
		"returned", len(recs),
	)

	return recs, nil
}
