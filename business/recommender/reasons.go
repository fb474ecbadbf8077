package recommender

import (
	"fmt"
	"strconv"
	"strings"

	"smartMarket/domain"
)

const (
	reasonSeparator = " • "
	reasonFallback  = "Popular choice among similar users"
)

// RecommendationReason explains a recommendation. Checks run in a fixed order so the
// text is deterministic for deterministic inputs.
func (s *Scorer) RecommendationReason(p domain.Product, profile domain.PreferenceProfile) string {
	var reasons []string

	if profile.HasCategory(p.Category) {
		reasons = append(reasons, fmt.Sprintf("Based on your interest in %s", p.Category))
	}
	if p.Rating >= s.cfg.HighRatingThreshold {
		reasons = append(reasons, "Highly rated by customers")
	}
	if p.Discount > 0 {
		reasons = append(reasons, fmt.Sprintf("Great deal: %s%% off", strconv.FormatFloat(p.Discount, 'f', -1, 64)))
	}
	if p.Featured {
		reasons = append(reasons, "Featured product")
	}

	if len(reasons) == 0 {
		return reasonFallback
	}
	return strings.Join(reasons, reasonSeparator)
}

var insightTemplates = [...]func(query, category string) string{
	func(q, _ string) string { return fmt.Sprintf(`Matches your search for "%s"`, q) },
	func(q, _ string) string { return fmt.Sprintf(`Highly relevant to "%s" based on AI analysis`, q) },
	func(q, _ string) string { return fmt.Sprintf(`Customers searching for "%s" also bought this`, q) },
	func(q, c string) string { return fmt.Sprintf(`Top result for "%s" in %s`, q, c) },
}

// SearchInsight picks one of the fixed insight templates at random. Cosmetic only.
func (s *Scorer) SearchInsight(p domain.Product, query string) string {
	i := int(unit(s.noise) * float64(len(insightTemplates)))
	return insightTemplates[i](query, p.Category)
}
