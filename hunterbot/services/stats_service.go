package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

// RarityProgress is one tier's completion line: how many distinct cards
// of the tier exist and how many the user owns in the chat.
type RarityProgress struct {
	Rarity string
	Owned  int
	Total  int
}

// CardStats aggregates a card's circulation figures.
type CardStats struct {
	Card        *models.Card
	TotalOwned  int
	UniqueOwned int
	TopOwners   []models.CardOwner
}

// CatalogStats is the slice of the card repository the stats queries need.
type CatalogStats interface {
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	CountByRarity(ctx context.Context) (map[string]int, error)
	TotalOwned(ctx context.Context, cardID int64) (int, error)
	UniqueOwners(ctx context.Context, cardID int64) (int, error)
	TopOwners(ctx context.Context, cardID int64, limit int) ([]models.CardOwner, error)
}

// OwnershipStats answers the per-user ownership aggregates. Rarity
// progress spans the user's whole inventory, not one chat.
type OwnershipStats interface {
	DistinctOwnedByRarity(ctx context.Context, userID string) (map[string]int, error)
}

// StatsService answers the read-only reporting queries. It owns no game
// state and never mutates anything.
type StatsService struct {
	cards     CatalogStats
	inventory OwnershipStats
}

func NewStatsService(cards CatalogStats, inventory OwnershipStats) *StatsService {
	return &StatsService{cards: cards, inventory: inventory}
}

// RarityProgress reports the user's per-tier completion across every
// chat, every tier present even when empty, highest tier first.
func (s *StatsService) RarityProgress(ctx context.Context, userID string) ([]RarityProgress, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	var totals, owned map[string]int
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.cards.CountByRarity(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		owned, err = s.inventory.DistinctOwnedByRarity(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	progress := make([]RarityProgress, 0, len(models.RarityTiers))
	for i := len(models.RarityTiers) - 1; i >= 0; i-- {
		tier := models.RarityTiers[i]
		progress = append(progress, RarityProgress{
			Rarity: tier,
			Owned:  owned[tier],
			Total:  totals[tier],
		})
	}
	return progress, nil
}

// CardStats fans the three circulation queries out concurrently.
func (s *StatsService) CardStats(ctx context.Context, cardID int64) (*CardStats, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	stats := &CardStats{Card: card}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalOwned, err = s.cards.TotalOwned(ctx, cardID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.UniqueOwned, err = s.cards.UniqueOwners(ctx, cardID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TopOwners, err = s.cards.TopOwners(ctx, cardID, config.TopOwnersLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
