package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/database/models"
	"github.com/hunterdex/hunterbot/hunterbot/game"
)

type InventoryRepository interface {
	game.LedgerStore

	// DistinctOwnedByRarity counts, per tier, how many distinct cards the
	// user owns across all chats. Feeds the rarity progress view.
	DistinctOwnedByRarity(ctx context.Context, userID string) (map[string]int, error)
}

type inventoryRepository struct {
	db *bun.DB
}

func NewInventoryRepository(db *bun.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CountForUser(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	n, err := r.db.NewSelect().
		Model((*models.InventoryRecord)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count inventory: %w", err)
	}
	return n, nil
}

func (r *inventoryRepository) CollectionCounts(ctx context.Context, chatID, userID string) ([]game.CollectionCount, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var counts []game.CollectionCount
	err := r.db.NewSelect().
		Model((*models.InventoryRecord)(nil)).
		ColumnExpr("inv.card_id AS card_id, c.name, c.series, c.rarity, c.event, COUNT(*) AS count").
		Join("JOIN cards AS c ON c.id = inv.card_id").
		Where("inv.chat_id = ? AND inv.user_id = ?", chatID, userID).
		GroupExpr("inv.card_id, c.name, c.series, c.rarity, c.event").
		OrderExpr("LOWER(c.series) ASC, inv.card_id ASC").
		Scan(ctx, &counts)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return counts, nil
}

// Grant appends up to qty records under the same per-user advisory lock
// the claim path takes, so the ceiling holds across both.
func (r *inventoryRepository) Grant(ctx context.Context, userID, chatID string, cardID int64, qty, capacity int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	applied := 0
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(?))", userID); err != nil {
			return fmt.Errorf("failed to take grant lock: %w", err)
		}

		count, err := tx.NewSelect().
			Model((*models.InventoryRecord)(nil)).
			Where("user_id = ?", userID).
			Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count inventory: %w", err)
		}

		headroom := capacity - count
		if headroom <= 0 {
			return nil
		}
		applied = qty
		if applied > headroom {
			applied = headroom
		}

		now := time.Now()
		records := make([]*models.InventoryRecord, applied)
		for i := range records {
			records[i] = &models.InventoryRecord{
				UserID:     userID,
				ChatID:     chatID,
				CardID:     cardID,
				ObtainedAt: now,
			}
		}
		if _, err := tx.NewInsert().Model(&records).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert grant records: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

func (r *inventoryRepository) DistinctOwnedByRarity(ctx context.Context, userID string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	var rows []struct {
		Rarity string `bun:"rarity"`
		Count  int    `bun:"count"`
	}
	err := r.db.NewSelect().
		Model((*models.InventoryRecord)(nil)).
		ColumnExpr("c.rarity, COUNT(DISTINCT inv.card_id) AS count").
		Join("JOIN cards AS c ON c.id = inv.card_id").
		Where("inv.user_id = ?", userID).
		GroupExpr("c.rarity").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to count owned by rarity: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Rarity] = row.Count
	}
	return counts, nil
}

func (r *inventoryRepository) Reset(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.InventoryRecord)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset inventory: %w", err)
	}
	removed, _ := res.RowsAffected()
	return removed, nil
}

func (r *inventoryRepository) RemoveOldest(ctx context.Context, userID string, cardID int64) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.InventoryRecord)(nil)).
		Where(`id = (SELECT id FROM inventory WHERE user_id = ? AND card_id = ? ORDER BY obtained_at ASC, id ASC LIMIT 1)`, userID, cardID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove inventory record: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return game.ErrNotOwned
	}
	return nil
}

func (r *inventoryRepository) Owns(ctx context.Context, chatID, userID string, cardID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	exists, err := r.db.NewSelect().
		Model((*models.InventoryRecord)(nil)).
		Where("chat_id = ? AND user_id = ? AND card_id = ?", chatID, userID, cardID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check ownership: %w", err)
	}
	return exists, nil
}

func (r *inventoryRepository) LatestCardID(ctx context.Context, chatID, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	record := new(models.InventoryRecord)
	err := r.db.NewSelect().
		Model(record).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		OrderExpr("obtained_at DESC, id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, game.ErrNotFound
		}
		return 0, fmt.Errorf("failed to get latest card: %w", err)
	}
	return record.CardID, nil
}
