package domain

// ScoredProduct is a product plus its per-query score and the text shown next to it.
// Reason is filled for recommendations, Insight for search results.
type ScoredProduct struct {
	Product
	Score   float64 `json:"score"`
	Reason  string  `json:"reason,omitempty"`
	Insight string  `json:"insight,omitempty"`
}

type ScoreBreakdown struct {
	ProductID        uint64  `json:"product_id"`
	Category         float64 `json:"category"`          // weighted category-interest term
	PriceRange       float64 `json:"price_range"`       // weighted price-in-range term
	ViewedSimilar    float64 `json:"viewed_similar"`    // weighted viewed-similar term
	PurchasedSimilar float64 `json:"purchased_similar"` // weighted purchased-similar term
	Rating           float64 `json:"rating"`
	Popularity       float64 `json:"popularity"`
	Exploration      float64 `json:"exploration"`
	FinalScore       float64 `json:"final_score"` // clamped sum
}

// DebugRecommendation pairs a ranked product with its score components.
type DebugRecommendation struct {
	ScoredProduct
	Breakdown ScoreBreakdown `json:"breakdown"`
}
