package recommender

import (
	"math"

	"smartMarket/domain"
)

// Scorer holds the pure scoring rules. It never touches storage.
type Scorer struct {
	cfg   Config
	noise NoiseSource
}

func NewScorer(cfg Config, noise NoiseSource) *Scorer {
	if noise == nil {
		noise = NewRandSource(0)
	}
	return &Scorer{cfg: cfg.withDefaults(), noise: noise}
}

// catalogIndex maps product id to product; the first occurrence of an id wins.
type catalogIndex map[uint64]domain.Product

func indexCatalog(catalog []domain.Product) catalogIndex {
	idx := make(catalogIndex, len(catalog))
	for _, p := range catalog {
		if _, ok := idx[p.ID]; !ok {
			idx[p.ID] = p
		}
	}
	return idx
}

// ScoreForRecommendation returns the affinity of p for profile, in [0, 1].
// Interaction history ids are resolved against catalog; unknown ids count as zero.
func (s *Scorer) ScoreForRecommendation(p domain.Product, profile domain.PreferenceProfile, catalog []domain.Product) float64 {
	return s.breakdown(p, profile, indexCatalog(catalog)).FinalScore
}

func (s *Scorer) breakdown(p domain.Product, profile domain.PreferenceProfile, idx catalogIndex) domain.ScoreBreakdown {
	w := s.cfg.Weights
	b := domain.ScoreBreakdown{ProductID: p.ID}

	if profile.HasCategory(p.Category) {
		b.Category = w.Category
	}

	if p.Price >= profile.PriceRange.Min && p.Price <= profile.PriceRange.Max {
		b.PriceRange = w.PriceRange
	}

	viewed := s.countSimilar(profile.ViewedProductIDs, idx, p)
	b.ViewedSimilar = capRatio(float64(viewed), float64(s.cfg.ViewedSimilarCap)) * w.ViewedSimilar

	purchased := s.countSimilar(profile.PurchasedProductIDs, idx, p)
	b.PurchasedSimilar = capRatio(float64(purchased), float64(s.cfg.PurchasedSimilarCap)) * w.PurchasedSimilar

	b.Rating = capRatio(math.Max(p.Rating, 0), s.cfg.MaxRating) * w.Rating
	b.Popularity = capRatio(math.Max(float64(p.Reviews), 0), s.cfg.PopularityReviews) * w.Popularity
	b.Exploration = unit(s.noise) * w.Exploration

	total := b.Category + b.PriceRange + b.ViewedSimilar + b.PurchasedSimilar +
		b.Rating + b.Popularity + b.Exploration
	b.FinalScore = math.Min(total, 1)

	return b
}

// countSimilar counts history entries (duplicates included) whose product is similar
// to candidate. The history product is the first argument of the similarity check.
func (s *Scorer) countSimilar(ids []uint64, idx catalogIndex, candidate domain.Product) int {
	n := 0
	for _, id := range ids {
		seen, ok := idx[id]
		if !ok {
			continue
		}
		if areSimilar(seen, candidate, s.cfg.SimilarPriceRatio) {
			n++
		}
	}
	return n
}

// AreSimilar reports whether candidate resembles interacted: same category, price
// within half of interacted's price, and at least one shared tag. The price ratio is
// taken relative to interacted, so argument order matters.
func AreSimilar(interacted, candidate domain.Product) bool {
	return areSimilar(interacted, candidate, defaultSimilarPriceRatio)
}

func areSimilar(interacted, candidate domain.Product, maxRatio float64) bool {
	if interacted.Category != candidate.Category {
		return false
	}
	// a zero base price makes the ratio undefined
	if interacted.Price <= 0 {
		return false
	}
	if math.Abs(interacted.Price-candidate.Price)/interacted.Price >= maxRatio {
		return false
	}
	for _, t := range interacted.Tags {
		if candidate.HasTag(t) {
			return true
		}
	}
	return false
}

// capRatio = min(v, limit) / limit
func capRatio(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return math.Min(v, limit) / limit
}
