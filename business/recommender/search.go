package recommender

import (
	"errors"
	"math"
	"sort"
	"strings"

	"smartMarket/domain"
)

// ErrInvalidQuery is returned for empty or whitespace-only search queries.
var ErrInvalidQuery = errors.New("please enter a search query")

// relevance is a sum of tenths; sums like 0.2+0.1 land a hair above 0.3.
const relevanceEpsilon = 1e-9

func queryTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// ValidateQuery rejects queries with no terms.
func ValidateQuery(query string) error {
	if len(queryTerms(query)) == 0 {
		return ErrInvalidQuery
	}
	return nil
}

// ScoreForQuery returns the relevance of p to query in [0, 1] using the default weights.
func ScoreForQuery(p domain.Product, query string, profile domain.PreferenceProfile) float64 {
	return scoreForQuery(p, queryTerms(query), profile, DefaultConfig())
}

func scoreForQuery(p domain.Product, terms []string, profile domain.PreferenceProfile, cfg Config) float64 {
	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	category := strings.ToLower(p.Category)

	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, strings.ToLower(t))
	}

	relevance := 0.0
	for _, term := range terms {
		if strings.Contains(name, term) {
			relevance += cfg.Search.Name
		}
		if strings.Contains(desc, term) {
			relevance += cfg.Search.Description
		}
		if strings.Contains(category, term) {
			relevance += cfg.Search.Category
		}
		for _, t := range tags {
			if strings.Contains(t, term) {
				relevance += cfg.Search.Tag
				break
			}
		}
	}

	if profile.HasCategory(p.Category) {
		relevance *= cfg.SearchCategoryBoost
	}

	return math.Min(relevance, 1)
}

// SearchResults scores the catalog against query, drops weak matches and returns
// the rest by descending relevance, ties in catalog order.
func (s *Scorer) SearchResults(query string, profile domain.PreferenceProfile, catalog []domain.Product) ([]domain.ScoredProduct, error) {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, ErrInvalidQuery
	}

	results := make([]domain.ScoredProduct, 0)
	for _, p := range catalog {
		rel := scoreForQuery(p, terms, profile, s.cfg)
		if rel <= s.cfg.MinSearchRelevance+relevanceEpsilon {
			continue
		}
		results = append(results, domain.ScoredProduct{
			Product: p,
			Score:   rel,
			Insight: s.SearchInsight(p, query),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}
