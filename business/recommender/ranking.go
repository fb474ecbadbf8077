package recommender

import (
	"sort"

	"smartMarket/domain"
)

// Rank scores every catalog product for profile and returns the top count, highest
// score first. Equal scores keep catalog order. count <= 0 uses the configured default.
func (s *Scorer) Rank(profile domain.PreferenceProfile, catalog []domain.Product, count int) []domain.ScoredProduct {
	debug := s.RankDebug(profile, catalog, count)

	out := make([]domain.ScoredProduct, 0, len(debug))
	for _, d := range debug {
		out = append(out, d.ScoredProduct)
	}
	return out
}

// RankDebug is Rank with the per-signal breakdown kept for every returned product.
func (s *Scorer) RankDebug(profile domain.PreferenceProfile, catalog []domain.Product, count int) []domain.DebugRecommendation {
	if len(catalog) == 0 {
		return []domain.DebugRecommendation{}
	}
	if count <= 0 {
		count = s.cfg.DefaultCount
	}

	idx := indexCatalog(catalog)

	scored := make([]domain.DebugRecommendation, 0, len(catalog))
	for _, p := range catalog {
		b := s.breakdown(p, profile, idx)
		scored = append(scored, domain.DebugRecommendation{
			ScoredProduct: domain.ScoredProduct{Product: p, Score: b.FinalScore},
			Breakdown:     b,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if count < len(scored) {
		scored = scored[:count]
	}

	for i := range scored {
		scored[i].Reason = s.RecommendationReason(scored[i].Product, profile)
	}

	return scored
}
