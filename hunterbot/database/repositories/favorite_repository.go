package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/database/models"
	"github.com/hunterdex/hunterbot/hunterbot/game"
)

type FavoriteRepository interface {
	game.FavoriteStore
}

type favoriteRepository struct {
	db *bun.DB
}

func NewFavoriteRepository(db *bun.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Set(ctx context.Context, userID string, cardID int64) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewInsert().
		Model(&models.Favorite{UserID: userID, CardID: cardID}).
		On("CONFLICT (user_id) DO UPDATE").
		Set("card_id = EXCLUDED.card_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Get(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	fav := new(models.Favorite)
	err := r.db.NewSelect().
		Model(fav).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, game.ErrNotFound
		}
		return 0, fmt.Errorf("failed to get favorite: %w", err)
	}
	return fav.CardID, nil
}
