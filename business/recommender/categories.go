package recommender

import "smartMarket/domain"

// PersonalizedCategories lists the profile's categories first (stored order), then the
// remaining catalog categories in first-seen order, capped at six entries.
func PersonalizedCategories(profile domain.PreferenceProfile, catalog []domain.Product) []string {
	out := make([]string, 0, maxPersonalizedCategories)
	seen := make(map[string]struct{})

	add := func(c string) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	for _, c := range profile.Categories {
		add(c)
	}
	for _, p := range catalog {
		add(p.Category)
	}

	if len(out) > maxPersonalizedCategories {
		out = out[:maxPersonalizedCategories]
	}
	return out
}
