package game

import (
	"context"
	"errors"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

// CoverSelector derives the card shown atop a user's collection view:
// the favorite if it is still owned in the chat, otherwise the most
// recently obtained card there. A favorite the user no longer owns stays
// dormant rather than being cleared.
type CoverSelector struct {
	favorites FavoriteStore
	ledger    LedgerStore
	cards     CardStore
}

func NewCoverSelector(favorites FavoriteStore, ledger LedgerStore, cards CardStore) *CoverSelector {
	return &CoverSelector{
		favorites: favorites,
		ledger:    ledger,
		cards:     cards,
	}
}

// SetFavorite records the user's cover choice. The card must be owned in
// the chat the command was issued from.
func (s *CoverSelector) SetFavorite(ctx context.Context, chatID, userID string, cardID int64) error {
	if _, err := s.cards.GetByID(ctx, cardID); err != nil {
		return err
	}

	owns, err := s.ledger.Owns(ctx, chatID, userID, cardID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrNotOwned
	}

	return s.favorites.Set(ctx, userID, cardID)
}

// EffectiveCover resolves the cover card for the user's collection in the
// chat, or ErrNotFound when the user owns nothing there.
func (s *CoverSelector) EffectiveCover(ctx context.Context, chatID, userID string) (*models.Card, error) {
	favID, err := s.favorites.Get(ctx, userID)
	switch {
	case err == nil:
		owned, ownErr := s.ledger.Owns(ctx, chatID, userID, favID)
		if ownErr != nil {
			return nil, ownErr
		}
		if owned {
			return s.cards.GetByID(ctx, favID)
		}
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	latest, err := s.ledger.LatestCardID(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	return s.cards.GetByID(ctx, latest)
}
