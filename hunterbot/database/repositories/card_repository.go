package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"

	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/database/models"
	"github.com/hunterdex/hunterbot/hunterbot/game"
)

type CardRepository interface {
	game.CardStore

	Create(ctx context.Context, card *models.Card) error
	Update(ctx context.Context, card *models.Card) error
	// Delete removes the card and every row referencing it (inventory,
	// spawn slots, favorites, pending gift offers) in one transaction.
	Delete(ctx context.Context, id int64) (*models.DeletionReport, error)
	GetAll(ctx context.Context) ([]*models.Card, error)
	GetByName(ctx context.Context, name string) ([]*models.Card, error)
	CountByRarity(ctx context.Context) (map[string]int, error)
	Count(ctx context.Context) (int64, error)
	TopOwners(ctx context.Context, cardID int64, limit int) ([]models.CardOwner, error)
	TotalOwned(ctx context.Context, cardID int64) (int, error)
	UniqueOwners(ctx context.Context, cardID int64) (int, error)
}

type cardRepository struct {
	db    *bun.DB
	cache *lru.Cache // id -> *models.Card
}

func NewCardRepository(db *bun.DB) CardRepository {
	cache, _ := lru.New(config.CardCacheSize)
	return &cardRepository{db: db, cache: cache}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	if card.UploadedAt.IsZero() {
		card.UploadedAt = time.Now()
	}
	if card.Event == "" {
		card.Event = models.EventNone
	}

	_, err := r.db.NewInsert().
		Model(card).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	if cached, ok := r.cache.Get(id); ok {
		return cached.(*models.Card), nil
	}

	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, game.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get card %d: %w", id, err)
	}

	r.cache.Add(id, card)
	return card, nil
}

func (r *cardRepository) Random(ctx context.Context) (*models.Card, error) {
	return r.randomWhere(ctx, "", nil)
}

func (r *cardRepository) RandomByRarity(ctx context.Context, rarity string) (*models.Card, error) {
	return r.randomWhere(ctx, "rarity = ?", rarity)
}

func (r *cardRepository) randomWhere(ctx context.Context, cond string, arg any) (*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	card := new(models.Card)
	q := r.db.NewSelect().Model(card)
	if cond != "" {
		q = q.Where(cond, arg)
	}
	err := q.OrderExpr("RANDOM()").Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, game.ErrNoCardsAvailable
		}
		return nil, fmt.Errorf("failed to draw random card: %w", err)
	}
	return card, nil
}

func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model(card).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update card %d: %w", card.ID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return game.ErrNotFound
	}

	r.cache.Remove(card.ID)
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, id int64) (*models.DeletionReport, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	report := &models.DeletionReport{CardID: id}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*models.InventoryRecord)(nil)).
			Where("card_id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete inventory rows: %w", err)
		}
		report.InventoryRemoved, _ = res.RowsAffected()

		res, err = tx.NewDelete().
			Model((*models.ActiveSpawn)(nil)).
			Where("card_id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete spawn slots: %w", err)
		}
		report.SpawnsRemoved, _ = res.RowsAffected()

		if _, err = tx.NewDelete().
			Model((*models.Favorite)(nil)).
			Where("card_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}

		// Open offers for a deleted card can never execute.
		now := time.Now()
		if _, err = tx.NewUpdate().
			Model((*models.GiftOffer)(nil)).
			Set("status = ?", models.GiftVoided).
			Set("resolved_at = ?", now).
			Where("card_id = ? AND status = ?", id, models.GiftPending).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to void gift offers: %w", err)
		}

		res, err = tx.NewDelete().
			Model((*models.Card)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return game.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.cache.Remove(id)
	return report, nil
}

func (r *cardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (r *cardRepository) GetByName(ctx context.Context, name string) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("LOWER(name) = LOWER(?)", name).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards by name: %w", err)
	}
	return cards, nil
}

func (r *cardRepository) CountByRarity(ctx context.Context) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	var rows []struct {
		Rarity string `bun:"rarity"`
		Count  int    `bun:"count"`
	}
	err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		ColumnExpr("rarity, COUNT(*) AS count").
		Group("rarity").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to count cards by rarity: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Rarity] = row.Count
	}
	return counts, nil
}

func (r *cardRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	n, err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return int64(n), nil
}

func (r *cardRepository) TopOwners(ctx context.Context, cardID int64, limit int) ([]models.CardOwner, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	var owners []models.CardOwner
	err := r.db.NewSelect().
		Model((*models.InventoryRecord)(nil)).
		ColumnExpr("user_id, COUNT(*) AS count").
		Where("card_id = ?", cardID).
		Group("user_id").
		OrderExpr("count DESC, user_id ASC").
		Limit(limit).
		Scan(ctx, &owners)
	if err != nil {
		return nil, fmt.Errorf("failed to get top owners: %w", err)
	}
	return owners, nil
}

func (r *cardRepository) TotalOwned(ctx context.Context, cardID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	n, err := r.db.NewSelect().
		Model((*models.InventoryRecord)(nil)).
		Where("card_id = ?", cardID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count owned copies: %w", err)
	}
	return n, nil
}

func (r *cardRepository) UniqueOwners(ctx context.Context, cardID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	var n int
	err := r.db.NewSelect().
		Model((*models.InventoryRecord)(nil)).
		ColumnExpr("COUNT(DISTINCT user_id)").
		Where("card_id = ?", cardID).
		Scan(ctx, &n)
	if err != nil {
		return 0, fmt.Errorf("failed to count unique owners: %w", err)
	}
	return n, nil
}
