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

type SettingsRepository interface {
	game.SettingsStore
}

type settingsRepository struct {
	db *bun.DB
}

func NewSettingsRepository(db *bun.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetOrCreate(ctx context.Context, chatID string) (*models.ChatSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	settings := new(models.ChatSettings)
	err := r.db.NewSelect().
		Model(settings).
		Where("chat_id = ?", chatID).
		Scan(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get chat settings: %w", err)
	}

	settings = &models.ChatSettings{
		ChatID:       chatID,
		SpawnEnabled: config.DefaultSpawnEnabled,
		SpawnEvery:   config.DefaultSpawnInterval,
	}
	// Two first touches can race; the loser keeps the winner's row.
	if _, err := r.db.NewInsert().
		Model(settings).
		On("CONFLICT (chat_id) DO NOTHING").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create chat settings: %w", err)
	}

	if err := r.db.NewSelect().
		Model(settings).
		Where("chat_id = ?", chatID).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to reload chat settings: %w", err)
	}
	return settings, nil
}

func (r *settingsRepository) SetEnabled(ctx context.Context, chatID string, enabled bool) error {
	return r.set(ctx, chatID, "spawn_enabled = ?", enabled)
}

func (r *settingsRepository) SetInterval(ctx context.Context, chatID string, every int) error {
	return r.set(ctx, chatID, "spawn_every = ?", every)
}

func (r *settingsRepository) set(ctx context.Context, chatID, expr string, value any) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.ChatSettings)(nil)).
		Set(expr, value).
		Where("chat_id = ?", chatID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update chat settings: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return game.ErrNotFound
	}
	return nil
}

// IncrementCounter bumps msg_counter in one statement and returns the
// fresh row, creating it on first touch. Concurrent messages each get a
// distinct counter value.
func (r *settingsRepository) IncrementCounter(ctx context.Context, chatID string) (*models.ChatSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	settings := &models.ChatSettings{
		ChatID:       chatID,
		SpawnEnabled: config.DefaultSpawnEnabled,
		SpawnEvery:   config.DefaultSpawnInterval,
		MsgCounter:   1,
	}
	err := r.db.NewInsert().
		Model(settings).
		On("CONFLICT (chat_id) DO UPDATE").
		Set("msg_counter = cs.msg_counter + 1").
		Returning("*").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to bump message counter: %w", err)
	}
	return settings, nil
}
