package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

func TestDrawRarity_Distribution(t *testing.T) {
	sel := NewRaritySelector(nil)
	rng := rand.New(rand.NewSource(42))
	sel.randFloat = rng.Float64

	const draws = 200_000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		counts[sel.DrawRarity()]++
	}

	var total float64
	for _, w := range DefaultWeights {
		total += w
	}

	// Within one percentage point of the configured share is plenty for
	// this many seeded draws.
	for _, tier := range models.RarityTiers {
		want := DefaultWeights[tier] / total
		got := float64(counts[tier]) / draws
		assert.InDeltaf(t, want, got, 0.01, "tier %s: want share %.4f got %.4f", tier, want, got)
	}
}

func TestDrawRarity_ZeroWeightTiersNeverDrawn(t *testing.T) {
	sel := NewRaritySelector(nil)
	rng := rand.New(rand.NewSource(7))
	sel.randFloat = rng.Float64

	for i := 0; i < 50_000; i++ {
		tier := sel.DrawRarity()
		require.NotEqual(t, models.RarityInfinity, tier)
		require.NotEqual(t, models.RarityOblivion, tier)
	}
}

func TestDrawRarity_SingleTier(t *testing.T) {
	sel := NewRaritySelector(map[string]float64{models.RarityCosmic: 0.1})
	for i := 0; i < 100; i++ {
		assert.Equal(t, models.RarityCosmic, sel.DrawRarity())
	}
}

func TestDrawRarity_AllZeroFallsBackToLowest(t *testing.T) {
	sel := NewRaritySelector(map[string]float64{
		models.RarityCommon: 0,
		models.RarityRare:   0,
	})
	assert.Equal(t, models.RarityCommon, sel.DrawRarity())
}

func TestDrawRarity_BoundaryRoll(t *testing.T) {
	// A roll of exactly the total weight must still land on a tier.
	sel := NewRaritySelector(map[string]float64{
		models.RarityCommon: 1,
		models.RarityRare:   1,
	})
	sel.randFloat = func() float64 { return 1.0 - 1e-16 }
	assert.Equal(t, models.RarityRare, sel.DrawRarity())
}
