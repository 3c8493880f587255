package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

type staticCatalogStats struct {
	cards  map[int64]*models.Card
	totals map[string]int
}

func (s staticCatalogStats) GetByID(_ context.Context, id int64) (*models.Card, error) {
	return s.cards[id], nil
}

func (s staticCatalogStats) CountByRarity(context.Context) (map[string]int, error) {
	return s.totals, nil
}

func (s staticCatalogStats) TotalOwned(context.Context, int64) (int, error) { return 0, nil }

func (s staticCatalogStats) UniqueOwners(context.Context, int64) (int, error) { return 0, nil }

func (s staticCatalogStats) TopOwners(context.Context, int64, int) ([]models.CardOwner, error) {
	return nil, nil
}

// ownershipRecord is one inventory row spread over users, chats and cards.
type ownershipRecord struct {
	userID string
	chatID string
	cardID int64
	rarity string
}

type staticOwnership []ownershipRecord

func (s staticOwnership) DistinctOwnedByRarity(_ context.Context, userID string) (map[string]int, error) {
	seen := make(map[int64]bool)
	counts := make(map[string]int)
	for _, rec := range s {
		if rec.userID != userID || seen[rec.cardID] {
			continue
		}
		seen[rec.cardID] = true
		counts[rec.rarity]++
	}
	return counts, nil
}

func TestRarityProgress_SpansAllChats(t *testing.T) {
	catalog := staticCatalogStats{
		totals: map[string]int{
			models.RarityCommon: 3,
			models.RarityRare:   2,
		},
	}
	// u1 owns card 1 in two chats (one distinct card), card 2 only in
	// chat-2, and card 3 only in chat-3. All of it counts.
	inventory := staticOwnership{
		{userID: "u1", chatID: "chat-1", cardID: 1, rarity: models.RarityCommon},
		{userID: "u1", chatID: "chat-2", cardID: 1, rarity: models.RarityCommon},
		{userID: "u1", chatID: "chat-2", cardID: 2, rarity: models.RarityCommon},
		{userID: "u1", chatID: "chat-3", cardID: 3, rarity: models.RarityRare},
		{userID: "u2", chatID: "chat-1", cardID: 2, rarity: models.RarityCommon},
	}

	s := NewStatsService(catalog, inventory)
	progress, err := s.RarityProgress(context.Background(), "u1")
	require.NoError(t, err)

	byTier := make(map[string]RarityProgress, len(progress))
	for _, p := range progress {
		byTier[p.Rarity] = p
	}
	assert.Equal(t, 2, byTier[models.RarityCommon].Owned, "cards from every chat count once each")
	assert.Equal(t, 1, byTier[models.RarityRare].Owned)
	assert.Equal(t, 3, byTier[models.RarityCommon].Total)
	assert.Equal(t, 2, byTier[models.RarityRare].Total)
}

func TestRarityProgress_AllTiersHighestFirst(t *testing.T) {
	s := NewStatsService(staticCatalogStats{totals: map[string]int{}}, staticOwnership{})

	progress, err := s.RarityProgress(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, progress, len(models.RarityTiers))

	assert.Equal(t, models.RarityOblivion, progress[0].Rarity)
	assert.Equal(t, models.RarityCommon, progress[len(progress)-1].Rarity)
	for _, p := range progress {
		assert.Zero(t, p.Owned)
	}
}
