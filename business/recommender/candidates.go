package recommender

import (
	"context"
	"errors"

	"smartMarket/domain"
	"smartMarket/pkg/logger"
)

// loadCatalog returns the current catalog. Provider failures degrade to an empty
// catalog so scoring yields empty results instead of an error.
func (e *Engine) loadCatalog(ctx context.Context) []domain.Product {
	if e.catalog == nil {
		return []domain.Product{}
	}

	products, err := e.catalog.GetCatalog(ctx)
	if err != nil {
		logger.Error("catalog unavailable, scoring over empty catalog",
			"trace_id", TraceIDFromContext(ctx),
			"error", err,
		)
		return []domain.Product{}
	}
	if products == nil {
		return []domain.Product{}
	}
	return products
}

// Profile returns the stored profile for userKey, or the default profile when it is
// absent, unreadable, or the store fails.
func (e *Engine) Profile(ctx context.Context, userKey string) domain.PreferenceProfile {
	if e.prefs == nil {
		return DefaultProfile()
	}

	stored, err := e.prefs.LoadProfile(ctx, userKey)
	switch {
	case errors.Is(err, domain.ErrMalformedProfile):
		ProfileRecoveriesTotal.WithLabelValues("malformed").Inc()
		logger.Warn("stored preference profile is malformed, using defaults",
			"trace_id", TraceIDFromContext(ctx),
			"user_key", userKey,
			"error", err,
		)
		return DefaultProfile()
	case err != nil:
		ProfileRecoveriesTotal.WithLabelValues("load_error").Inc()
		logger.Error("failed to load preference profile, using defaults",
			"trace_id", TraceIDFromContext(ctx),
			"user_key", userKey,
			"error", err,
		)
		return DefaultProfile()
	case stored == nil:
		return DefaultProfile()
	}

	return normalizeProfile(*stored)
}

func (e *Engine) saveProfile(ctx context.Context, userKey string, profile domain.PreferenceProfile) {
	if e.prefs == nil {
		return
	}
	if err := e.prefs.SaveProfile(ctx, userKey, profile); err != nil {
		logger.Error("failed to save preference profile",
			"trace_id", TraceIDFromContext(ctx),
			"user_key", userKey,
			"error", err,
		)
	}
}
