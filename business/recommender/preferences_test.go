package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartMarket/domain"
)

func TestApplyInteraction_ViewKeepsLastFifty(t *testing.T) {
	profile := DefaultProfile()
	for id := uint64(1); id <= 60; id++ {
		profile = ApplyInteraction(profile, domain.Interaction{Type: domain.InteractionView, ProductID: id})
		require.LessOrEqual(t, len(profile.ViewedProductIDs), 50)
	}

	require.Len(t, profile.ViewedProductIDs, 50)
	for i, id := range profile.ViewedProductIDs {
		assert.Equal(t, uint64(11+i), id)
	}
}

func TestApplyInteraction_PurchaseIsUnbounded(t *testing.T) {
	profile := DefaultProfile()
	for id := uint64(1); id <= 75; id++ {
		profile = ApplyInteraction(profile, domain.Interaction{Type: domain.InteractionPurchase, ProductID: id})
	}

	assert.Len(t, profile.PurchasedProductIDs, 75)
	assert.Equal(t, uint64(1), profile.PurchasedProductIDs[0])
}

func TestApplyInteraction_CategoryClickIsIdempotent(t *testing.T) {
	profile := DefaultProfile()
	click := func(c string) {
		profile = ApplyInteraction(profile, domain.Interaction{Type: domain.InteractionCategoryClick, Category: c})
	}

	click("fashion")
	click("home")
	click("fashion")
	click("home")

	assert.Equal(t, []string{"fashion", "home"}, profile.Categories)
}

func TestApplyInteraction_UnknownTypeIsNoop(t *testing.T) {
	profile := DefaultProfile()
	profile.Categories = []string{"home"}

	out := ApplyInteraction(profile, domain.Interaction{Type: "wishlist", ProductID: 3})

	assert.Equal(t, profile, out)
}

func TestApplyInteraction_DoesNotMutateInput(t *testing.T) {
	profile := DefaultProfile()
	profile.ViewedProductIDs = make([]uint64, 0, 10)
	profile.ViewedProductIDs = append(profile.ViewedProductIDs, 1)

	out := ApplyInteraction(profile, domain.Interaction{Type: domain.InteractionView, ProductID: 2})

	assert.Equal(t, []uint64{1}, profile.ViewedProductIDs)
	assert.Equal(t, []uint64{1, 2}, out.ViewedProductIDs)
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()

	assert.Empty(t, p.Categories)
	assert.Empty(t, p.Brands)
	assert.Empty(t, p.ViewedProductIDs)
	assert.Empty(t, p.PurchasedProductIDs)
	assert.Equal(t, domain.PriceRange{Min: 0, Max: 5000}, p.PriceRange)
}

func TestNormalizeProfile_RepairsInvariants(t *testing.T) {
	in := domain.PreferenceProfile{
		Categories: []string{"home", "fashion", "home"},
	}
	for id := uint64(1); id <= 70; id++ {
		in.ViewedProductIDs = append(in.ViewedProductIDs, id)
	}

	out := normalizeProfile(in)

	assert.Equal(t, []string{"home", "fashion"}, out.Categories)
	assert.Len(t, out.ViewedProductIDs, 50)
	assert.Equal(t, uint64(21), out.ViewedProductIDs[0])
	assert.NotNil(t, out.Brands)
	assert.NotNil(t, out.PurchasedProductIDs)
}
