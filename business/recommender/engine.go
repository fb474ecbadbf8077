package recommender

import (
	"context"
	"fmt"
	"time"

	"smartMarket/domain"
	"smartMarket/pkg/logger"
)

// ---- Collaborator interfaces ----

// CatalogProvider supplies the product list. It may fail; the engine then scores an
// empty catalog.
type CatalogProvider interface {
	GetCatalog(ctx context.Context) ([]domain.Product, error)
}

// PreferenceRepository persists one PreferenceProfile per user key. LoadProfile
// returns (nil, nil) when nothing is stored and domain.ErrMalformedProfile when the
// stored data cannot be decoded.
type PreferenceRepository interface {
	LoadProfile(ctx context.Context, userKey string) (*domain.PreferenceProfile, error)
	SaveProfile(ctx context.Context, userKey string, profile domain.PreferenceProfile) error
}

// ---- Engine ----

type Engine struct {
	catalog CatalogProvider
	prefs   PreferenceRepository
	scorer  *Scorer
	cfg     Config
	locks   *keyedMutex
}

func NewEngine(
	catalog CatalogProvider,
	prefs PreferenceRepository,
	cfg Config,
	noise NoiseSource,
) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		catalog: catalog,
		prefs:   prefs,
		scorer:  NewScorer(cfg, noise),
		cfg:     cfg,
		locks:   newKeyedMutex(),
	}
}

func (e *Engine) Scorer() *Scorer {
	return e.scorer
}

// ---- Preference maintenance ----

// RecordInteraction applies ev to the user's profile and persists the result.
// Calls for the same user key are serialized so concurrent events are not lost.
func (e *Engine) RecordInteraction(
	ctx context.Context,
	userKey string,
	ev domain.Interaction,
) (domain.PreferenceProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.PreferenceProfile{}, fmt.Errorf("context error: %w", err)
	}

	unlock := e.locks.Lock(userKey)
	defer unlock()

	profile := e.Profile(ctx, userKey)
	updated := ApplyInteraction(profile, ev)
	e.saveProfile(ctx, userKey, updated)

	InteractionsTotal.WithLabelValues(string(ev.Type)).Inc()

	logger.Debug("preference_interaction",
		"trace_id", TraceIDFromContext(ctx),
		"user_key", userKey,
		"type", ev.Type,
		"product_id", ev.ProductID,
		"category", ev.Category,
		"viewed", len(updated.ViewedProductIDs),
		"purchased", len(updated.PurchasedProductIDs),
	)

	return updated, nil
}

// ResetPreferences replaces the user's profile with the default one.
func (e *Engine) ResetPreferences(ctx context.Context, userKey string) (domain.PreferenceProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.PreferenceProfile{}, fmt.Errorf("context error: %w", err)
	}

	unlock := e.locks.Lock(userKey)
	defer unlock()

	profile := DefaultProfile()
	e.saveProfile(ctx, userKey, profile)

	logger.Info("preferences reset",
		"trace_id", TraceIDFromContext(ctx),
		"user_key", userKey,
	)

	return profile, nil
}

// ---- Recommendation / serving ----

// Recommend returns the top count products for the user; count <= 0 uses the default.
func (e *Engine) Recommend(ctx context.Context, userKey string, count int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	catalog := e.loadCatalog(ctx)
	profile := e.Profile(ctx, userKey)

	recs := e.scorer.Rank(profile, catalog, count)
	RecommendationsServedTotal.Inc()

	logger.Debug("recommend",
		"trace_id", TraceIDFromContext(ctx),
		"user_key", userKey,
		"candidate_count", len(catalog),
		"returned", len(recs),
	)

	return recs, nil
}

// Categories returns the user's personalized category list.
func (e *Engine) Categories(ctx context.Context, userKey string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return PersonalizedCategories(e.Profile(ctx, userKey), e.loadCatalog(ctx)), nil
}

// ---- Search ----

// SearchOutcome is delivered once per SearchAsync call.
type SearchOutcome struct {
	Query   string
	Results []domain.ScoredProduct
	Err     error
}

// Search runs a relevance search synchronously, without the simulated latency.
func (e *Engine) Search(ctx context.Context, userKey, query string) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if err := ValidateQuery(query); err != nil {
		SearchRequestsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	return e.search(ctx, userKey, query)
}

// SearchAsync validates query immediately and returns a channel that receives exactly
// one outcome after the configured latency. Each call has its own channel, so results
// arrive in completion order; earlier searches are not canceled by later ones.
func (e *Engine) SearchAsync(ctx context.Context, userKey, query string) (<-chan SearchOutcome, error) {
	if err := ValidateQuery(query); err != nil {
		SearchRequestsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	out := make(chan SearchOutcome, 1)

	go func() {
		defer close(out)

		if e.cfg.SearchLatency > 0 {
			timer := time.NewTimer(e.cfg.SearchLatency)
			defer timer.Stop()

			select {
			case <-ctx.Done():
				SearchRequestsTotal.WithLabelValues("canceled").Inc()
				out <- SearchOutcome{Query: query, Err: fmt.Errorf("context error: %w", ctx.Err())}
				return
			case <-timer.C:
			}
		}

		results, err := e.search(ctx, userKey, query)
		out <- SearchOutcome{Query: query, Results: results, Err: err}
	}()

	return out, nil
}

func (e *Engine) search(ctx context.Context, userKey, query string) ([]domain.ScoredProduct, error) {
	catalog := e.loadCatalog(ctx)
	profile := e.Profile(ctx, userKey)

	results, err := e.scorer.SearchResults(query, profile, catalog)
	if err != nil {
		return nil, err
	}

	SearchRequestsTotal.WithLabelValues("ok").Inc()
	SearchResultsReturned.Observe(float64(len(results)))

	logger.Debug("search",
		"trace_id", TraceIDFromContext(ctx),
		"user_key", userKey,
		"query", query,
		"candidate_count", len(catalog),
		"returned", len(results),
	)

	return results, nil
}
