package recommender

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartMarket/domain"
)

func iphone() domain.Product {
	return testCatalog()[0]
}

func TestScoreForQuery_DescriptionAndTagMatches(t *testing.T) {
	// name has neither term; description has both (0.3+0.3); tags have both (0.1+0.1)
	got := ScoreForQuery(iphone(), "apple smartphone", DefaultProfile())
	assert.InDelta(t, 0.8, got, eps)
}

func TestScoreForQuery_CategoryBoostAppliedOnce(t *testing.T) {
	profile := DefaultProfile()
	profile.Categories = []string{"electronics"}

	got := ScoreForQuery(iphone(), "apple smartphone", profile)
	assert.InDelta(t, 0.96, got, eps)
}

func TestScoreForQuery_ClampsToOne(t *testing.T) {
	p := iphone()
	p.Name = "Apple Smartphone 15"

	assert.Equal(t, 1.0, ScoreForQuery(p, "apple smartphone", DefaultProfile()))
}

func TestScoreForQuery_SubstringAndCaseInsensitive(t *testing.T) {
	// "phone" is inside "iPhone", "smartphone" description and tag
	got := ScoreForQuery(iphone(), "PHONE", DefaultProfile())
	assert.InDelta(t, 0.4+0.3+0.1, got, eps)
}

func TestScoreForQuery_CategoryTerm(t *testing.T) {
	got := ScoreForQuery(iphone(), "electronics", DefaultProfile())
	assert.InDelta(t, 0.2, got, eps)
}

func TestScoreForQuery_Bounds(t *testing.T) {
	queries := []string{"", "a", "apple apple apple apple", "pro max chip apple", "zzz", "e"}
	for _, q := range queries {
		for _, p := range testCatalog() {
			got := ScoreForQuery(p, q, DefaultProfile())
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		}
	}
}

func TestSearchResults_NoMatches(t *testing.T) {
	s := NewScorer(DefaultConfig(), FixedNoise(0))

	results, err := s.SearchResults("xyz123", DefaultProfile(), testCatalog())

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchResults_ThresholdIsExclusive(t *testing.T) {
	s := NewScorer(DefaultConfig(), FixedNoise(0))
	// only the description matches: exactly 0.3
	catalog := []domain.Product{{ID: 1, Name: "Widget", Description: "cordless", Category: "home"}}

	results, err := s.SearchResults("cordless", DefaultProfile(), catalog)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchResults_ThresholdExcludesSummedTerms(t *testing.T) {
	s := NewScorer(DefaultConfig(), FixedNoise(0))
	// category (0.2) plus tag (0.1) adds up to 0.30000000000000004
	catalog := []domain.Product{{ID: 6, Name: "Dyson V15 Detect", Description: "Cordless vacuum", Category: "home", Tags: []string{"dyson", "home", "cleaning"}}}

	assert.InDelta(t, 0.3, ScoreForQuery(catalog[0], "home", DefaultProfile()), eps)

	results, err := s.SearchResults("home", DefaultProfile(), catalog)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchResults_SortedWithInsights(t *testing.T) {
	s := NewScorer(DefaultConfig(), FixedNoise(0.3))

	results, err := s.SearchResults("  apple   smartphone ", DefaultProfile(), testCatalog())

	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, uint64(1), results[0].ID)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	for _, r := range results {
		assert.Greater(t, r.Score, 0.3)
		assert.Contains(t, possibleInsights("  apple   smartphone ", r.Category), r.Insight)
	}
}

func TestSearchResults_TiesKeepCatalogOrder(t *testing.T) {
	s := NewScorer(DefaultConfig(), FixedNoise(0))
	catalog := []domain.Product{
		{ID: 7, Name: "Lamp shade"},
		{ID: 3, Name: "Lamp base"},
		{ID: 5, Name: "Desk lamp"},
	}

	results, err := s.SearchResults("lamp", DefaultProfile(), catalog)

	require.NoError(t, err)
	assert.Equal(t, []uint64{7, 3, 5}, ids(results))
}

func TestSearchResults_InvalidQuery(t *testing.T) {
	s := NewScorer(DefaultConfig(), FixedNoise(0))

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := s.SearchResults(q, DefaultProfile(), testCatalog())
		assert.ErrorIs(t, err, ErrInvalidQuery)
		assert.ErrorIs(t, ValidateQuery(q), ErrInvalidQuery)
	}
}

func TestSearchInsight_AlwaysOneOfTemplates(t *testing.T) {
	s := NewScorer(DefaultConfig(), NewRandSource(7))
	p := iphone()
	allowed := possibleInsights("laptop", p.Category)

	for i := 0; i < 100; i++ {
		assert.Contains(t, allowed, s.SearchInsight(p, "laptop"))
	}

	for _, n := range []FixedNoise{0, 0.25, 0.5, 0.75, 0.9999, 1, -1} {
		assert.Contains(t, allowed, NewScorer(DefaultConfig(), n).SearchInsight(p, "laptop"))
	}
}

func possibleInsights(query, category string) []string {
	return []string{
		fmt.Sprintf(`Matches your search for "%s"`, query),
		fmt.Sprintf(`Highly relevant to "%s" based on AI analysis`, query),
		fmt.Sprintf(`Customers searching for "%s" also bought this`, query),
		fmt.Sprintf(`Top result for "%s" in %s`, query, category),
	}
}
