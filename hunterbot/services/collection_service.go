package services

import (
	"context"
	"errors"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
	"github.com/hunterdex/hunterbot/hunterbot/game"
)

// SeriesGroup is one series' slice of a collection, cards in catalog order.
type SeriesGroup struct {
	Series string
	Cards  []game.CollectionCount
}

// CollectionView is everything the harem renderer needs: the cover card
// (nil for an empty collection), the series groups and the total record
// count.
type CollectionView struct {
	Cover  *models.Card
	Groups []SeriesGroup
	Total  int
}

// CollectionService assembles the grouped collection view.
type CollectionService struct {
	ledger *game.Ledger
	cover  *game.CoverSelector
}

func NewCollectionService(ledger *game.Ledger, cover *game.CoverSelector) *CollectionService {
	return &CollectionService{ledger: ledger, cover: cover}
}

func (s *CollectionService) View(ctx context.Context, chatID, userID string) (*CollectionView, error) {
	counts, err := s.ledger.CollectionCounts(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	view := &CollectionView{}
	for _, c := range counts {
		view.Total += c.Count
		if n := len(view.Groups); n == 0 || view.Groups[n-1].Series != c.Series {
			view.Groups = append(view.Groups, SeriesGroup{Series: c.Series})
		}
		g := &view.Groups[len(view.Groups)-1]
		g.Cards = append(g.Cards, c)
	}

	if view.Total > 0 {
		cover, err := s.cover.EffectiveCover(ctx, chatID, userID)
		if err != nil && !errors.Is(err, game.ErrNotFound) {
			return nil, err
		}
		view.Cover = cover
	}
	return view, nil
}
