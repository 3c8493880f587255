package game

import (
	"math/rand"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

// DefaultWeights is the production spawn distribution. A tier with weight
// zero never spawns naturally but can still be granted by an admin.
var DefaultWeights = map[string]float64{
	models.RarityCommon:       60,
	models.RarityRare:         25,
	models.RarityEpic:         10,
	models.RarityLegendary:    4,
	models.RarityFlat:         1,
	models.RarityTranscendent: 0.4,
	models.RarityCosmic:       0.1,
	models.RarityInfinity:     0,
	models.RarityOblivion:     0,
}

// RaritySelector draws rarity tiers proportionally to their weights.
type RaritySelector struct {
	weights   map[string]float64
	randFloat func() float64
}

func NewRaritySelector(weights map[string]float64) *RaritySelector {
	if len(weights) == 0 {
		weights = DefaultWeights
	}
	return &RaritySelector{
		weights:   weights,
		randFloat: rand.Float64,
	}
}

// DrawRarity picks a tier by cumulative-weight scan over the tiers with
// positive weight, in the fixed tier order. With no positive weight at
// all it falls back to the lowest tier.
func (s *RaritySelector) DrawRarity() string {
	var total float64
	for _, tier := range models.RarityTiers {
		if w := s.weights[tier]; w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return models.RarityTiers[0]
	}

	roll := s.randFloat() * total
	var upto float64
	last := models.RarityTiers[0]
	for _, tier := range models.RarityTiers {
		w := s.weights[tier]
		if w <= 0 {
			continue
		}
		upto += w
		last = tier
		if roll < upto {
			return tier
		}
	}
	return last
}
