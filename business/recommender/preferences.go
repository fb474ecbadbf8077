package recommender

import "smartMarket/domain"

// DefaultProfile is the profile used on first visit, after a reset, and whenever the
// stored one is absent or unreadable.
func DefaultProfile() domain.PreferenceProfile {
	return domain.PreferenceProfile{
		Categories:          []string{},
		PriceRange:          domain.PriceRange{Min: domain.DefaultPriceMin, Max: domain.DefaultPriceMax},
		Brands:              []string{},
		ViewedProductIDs:    []uint64{},
		PurchasedProductIDs: []uint64{},
	}
}

// ApplyInteraction returns the profile after ev. The input profile is not modified.
// Unknown interaction types leave the profile unchanged.
func ApplyInteraction(profile domain.PreferenceProfile, ev domain.Interaction) domain.PreferenceProfile {
	out := cloneProfile(profile)

	switch ev.Type {
	case domain.InteractionView:
		out.ViewedProductIDs = append(out.ViewedProductIDs, ev.ProductID)
		out.ViewedProductIDs = keepLast(out.ViewedProductIDs, maxViewedProducts)
	case domain.InteractionPurchase:
		out.PurchasedProductIDs = append(out.PurchasedProductIDs, ev.ProductID)
	case domain.InteractionCategoryClick:
		if ev.Category != "" && !out.HasCategory(ev.Category) {
			out.Categories = append(out.Categories, ev.Category)
		}
	}

	return out
}

// normalizeProfile repairs a loaded profile so the invariants hold: no nil slices,
// no duplicate categories, at most maxViewedProducts viewed ids.
func normalizeProfile(p domain.PreferenceProfile) domain.PreferenceProfile {
	out := cloneProfile(p)

	seen := make(map[string]struct{}, len(out.Categories))
	cats := out.Categories[:0]
	for _, c := range out.Categories {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		cats = append(cats, c)
	}
	out.Categories = cats
	out.ViewedProductIDs = keepLast(out.ViewedProductIDs, maxViewedProducts)

	return out
}

func cloneProfile(p domain.PreferenceProfile) domain.PreferenceProfile {
	return domain.PreferenceProfile{
		Categories:          append([]string{}, p.Categories...),
		PriceRange:          p.PriceRange,
		Brands:              append([]string{}, p.Brands...),
		ViewedProductIDs:    append([]uint64{}, p.ViewedProductIDs...),
		PurchasedProductIDs: append([]uint64{}, p.PurchasedProductIDs...),
	}
}

// keepLast drops from the front until at most n elements remain.
func keepLast(ids []uint64, n int) []uint64 {
	if len(ids) <= n {
		return ids
	}
	return append([]uint64{}, ids[len(ids)-n:]...)
}
