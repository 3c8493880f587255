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

type SpawnRepository interface {
	game.SpawnStore
}

type spawnRepository struct {
	db *bun.DB
}

func NewSpawnRepository(db *bun.DB) SpawnRepository {
	return &spawnRepository{db: db}
}

func (r *spawnRepository) Get(ctx context.Context, chatID string) (*models.ActiveSpawn, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	spawn := new(models.ActiveSpawn)
	err := r.db.NewSelect().
		Model(spawn).
		Where("chat_id = ?", chatID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, game.ErrNoActiveSpawn
		}
		return nil, fmt.Errorf("failed to get spawn slot: %w", err)
	}
	return spawn, nil
}

// Install writes the chat's slot. The existing row is locked first so two
// concurrent triggers cannot both pass the pending check; the survivor's
// upsert replaces a claimed remnant in place.
func (r *spawnRepository) Install(ctx context.Context, spawn *models.ActiveSpawn) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		current := new(models.ActiveSpawn)
		err := tx.NewSelect().
			Model(current).
			Where("chat_id = ?", spawn.ChatID).
			For("UPDATE").
			Scan(ctx)
		switch {
		case err == nil:
			if !current.Claimed() {
				return game.ErrSpawnBlocked
			}
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("failed to lock spawn slot: %w", err)
		}

		_, err = tx.NewInsert().
			Model(spawn).
			On("CONFLICT (chat_id) DO UPDATE").
			Set("card_id = EXCLUDED.card_id").
			Set("spawned_msg_id = EXCLUDED.spawned_msg_id").
			Set("spawned_at = EXCLUDED.spawned_at").
			Set("claimed_by = NULL").
			Set("claimed_at = NULL").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to install spawn slot: %w", err)
		}
		return nil
	})
}

// Claim commits a win in one transaction: it takes a per-user advisory
// lock so the capacity count cannot race a grant or another claim in a
// different chat, re-counts the claimer's records, flips the slot with a
// conditional update that only one caller can win, and appends the
// inventory record.
func (r *spawnRepository) Claim(ctx context.Context, chatID, userID string, at time.Time, capacity int) (*models.ActiveSpawn, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	spawn := new(models.ActiveSpawn)
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(?))", userID); err != nil {
			return fmt.Errorf("failed to take claim lock: %w", err)
		}

		count, err := tx.NewSelect().
			Model((*models.InventoryRecord)(nil)).
			Where("user_id = ?", userID).
			Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count inventory: %w", err)
		}
		if count >= capacity {
			return game.ErrCapacityFull
		}

		res, err := tx.NewUpdate().
			Model((*models.ActiveSpawn)(nil)).
			Set("claimed_by = ?", userID).
			Set("claimed_at = ?", at).
			Where("chat_id = ? AND claimed_by IS NULL", chatID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to claim spawn: %w", err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			// Either no slot exists or someone got there first.
			exists, err := tx.NewSelect().
				Model((*models.ActiveSpawn)(nil)).
				Where("chat_id = ?", chatID).
				Exists(ctx)
			if err != nil {
				return fmt.Errorf("failed to check spawn slot: %w", err)
			}
			if !exists {
				return game.ErrNoActiveSpawn
			}
			return game.ErrAlreadyClaimed
		}

		if err := tx.NewSelect().
			Model(spawn).
			Where("chat_id = ?", chatID).
			Scan(ctx); err != nil {
			return fmt.Errorf("failed to reload spawn slot: %w", err)
		}

		if _, err := tx.NewInsert().
			Model(&models.InventoryRecord{
				UserID:     userID,
				ChatID:     chatID,
				CardID:     spawn.CardID,
				ObtainedAt: at,
			}).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to append inventory record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return spawn, nil
}

func (r *spawnRepository) Clear(ctx context.Context, chatID string) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.ActiveSpawn)(nil)).
		Where("chat_id = ?", chatID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear spawn slot: %w", err)
	}
	return nil
}
