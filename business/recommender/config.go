package recommender

import "time"

// Weights of the affinity signals. They sum to 1 so the unclamped score stays in [0,1].
type Weights struct {
	Category         float64
	PriceRange       float64
	ViewedSimilar    float64
	PurchasedSimilar float64
	Rating           float64
	Popularity       float64
	Exploration      float64
}

// SearchWeights are the per-term relevance contributions.
type SearchWeights struct {
	Name        float64
	Description float64
	Category    float64
	Tag         float64
}

type Config struct {
	Weights Weights

	// caps applied to raw signal counts before normalising
	ViewedSimilarCap    int
	PurchasedSimilarCap int
	PopularityReviews   float64
	MaxRating           float64

	// reason text
	HighRatingThreshold float64

	// similarity: |p.price - q.price| / p.price must stay below this
	SimilarPriceRatio float64

	Search              SearchWeights
	SearchCategoryBoost float64
	MinSearchRelevance  float64 // results at or below are dropped

	// simulated AI latency before async search results are delivered
	SearchLatency time.Duration

	DefaultCount int
}

const (
	defaultWCategory         = 0.30
	defaultWPriceRange       = 0.20
	defaultWViewedSimilar    = 0.15
	defaultWPurchasedSimilar = 0.15
	defaultWRating           = 0.10
	defaultWPopularity       = 0.05
	defaultWExploration      = 0.05

	defaultViewedSimilarCap    = 10
	defaultPurchasedSimilarCap = 5
	defaultPopularityReviews   = 1000
	defaultMaxRating           = 5
	defaultHighRating          = 4.5
	defaultSimilarPriceRatio   = 0.5

	defaultSearchName        = 0.4
	defaultSearchDescription = 0.3
	defaultSearchCategory    = 0.2
	defaultSearchTag         = 0.1
	defaultSearchBoost       = 1.2
	defaultMinRelevance      = 0.3

	defaultRecommendCount = 6

	// structural limits of the profile and category list
	maxViewedProducts         = 50
	maxPersonalizedCategories = 6
)

func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Category:         defaultWCategory,
			PriceRange:       defaultWPriceRange,
			ViewedSimilar:    defaultWViewedSimilar,
			PurchasedSimilar: defaultWPurchasedSimilar,
			Rating:           defaultWRating,
			Popularity:       defaultWPopularity,
			Exploration:      defaultWExploration,
		},

		ViewedSimilarCap:    defaultViewedSimilarCap,
		PurchasedSimilarCap: defaultPurchasedSimilarCap,
		PopularityReviews:   defaultPopularityReviews,
		MaxRating:           defaultMaxRating,
		HighRatingThreshold: defaultHighRating,
		SimilarPriceRatio:   defaultSimilarPriceRatio,

		Search: SearchWeights{
			Name:        defaultSearchName,
			Description: defaultSearchDescription,
			Category:    defaultSearchCategory,
			Tag:         defaultSearchTag,
		},
		SearchCategoryBoost: defaultSearchBoost,
		MinSearchRelevance:  defaultMinRelevance,

		DefaultCount: defaultRecommendCount,
	}
}

// withDefaults fills zero-valued knobs so a partially built Config stays usable.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Weights == (Weights{}) {
		c.Weights = d.Weights
	}
	if c.Search == (SearchWeights{}) {
		c.Search = d.Search
	}
	if c.ViewedSimilarCap <= 0 {
		c.ViewedSimilarCap = d.ViewedSimilarCap
	}
	if c.PurchasedSimilarCap <= 0 {
		c.PurchasedSimilarCap = d.PurchasedSimilarCap
	}
	if c.PopularityReviews <= 0 {
		c.PopularityReviews = d.PopularityReviews
	}
	if c.MaxRating <= 0 {
		c.MaxRating = d.MaxRating
	}
	if c.HighRatingThreshold <= 0 {
		c.HighRatingThreshold = d.HighRatingThreshold
	}
	if c.SimilarPriceRatio <= 0 {
		c.SimilarPriceRatio = d.SimilarPriceRatio
	}
	if c.SearchCategoryBoost <= 0 {
		c.SearchCategoryBoost = d.SearchCategoryBoost
	}
	if c.MinSearchRelevance <= 0 {
		c.MinSearchRelevance = d.MinSearchRelevance
	}
	if c.DefaultCount <= 0 {
		c.DefaultCount = d.DefaultCount
	}
	if c.SearchLatency < 0 {
		c.SearchLatency = 0
	}
	return c
}
