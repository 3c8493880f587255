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

type GiftRepository interface {
	game.GiftStore

	// PendingFrom lists a sender's open offers, oldest first.
	PendingFrom(ctx context.Context, chatID, fromUser string) ([]*models.GiftOffer, error)
}

type giftRepository struct {
	db *bun.DB
}

func NewGiftRepository(db *bun.DB) GiftRepository {
	return &giftRepository{db: db}
}

func (r *giftRepository) Create(ctx context.Context, offer *models.GiftOffer) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = time.Now()
	}
	offer.Status = models.GiftPending

	_, err := r.db.NewInsert().
		Model(offer).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create gift offer: %w", err)
	}
	return nil
}

func (r *giftRepository) GetByID(ctx context.Context, id int64) (*models.GiftOffer, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	offer := new(models.GiftOffer)
	err := r.db.NewSelect().
		Model(offer).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, game.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get gift offer: %w", err)
	}
	return offer, nil
}

// Execute settles a pending offer in one serializable transaction: lock
// the offer row, move the sender's oldest matching inventory record to
// the receiver, and mark the offer confirmed. Failure at any step rolls
// everything back; an offer whose sender lost the card stays pending.
func (r *giftRepository) Execute(ctx context.Context, offerID int64, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	offer := new(models.GiftOffer)
	err = tx.NewSelect().
		Model(offer).
		Where("id = ?", offerID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.ErrNotFound
		}
		return fmt.Errorf("failed to lock gift offer: %w", err)
	}
	if offer.Status != models.GiftPending {
		return game.ErrOfferResolved
	}

	// Debit: the sender's oldest record of the card in the offer's chat.
	res, err := tx.NewDelete().
		Model((*models.InventoryRecord)(nil)).
		Where(`id = (SELECT id FROM inventory WHERE user_id = ? AND chat_id = ? AND card_id = ? ORDER BY obtained_at ASC, id ASC LIMIT 1)`,
			offer.FromUser, offer.ChatID, offer.CardID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to debit sender: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return game.ErrNoLongerOwned
	}

	if _, err := tx.NewInsert().
		Model(&models.InventoryRecord{
			UserID:     offer.ToUser,
			ChatID:     offer.ChatID,
			CardID:     offer.CardID,
			ObtainedAt: at,
		}).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to credit receiver: %w", err)
	}

	if _, err := tx.NewUpdate().
		Model((*models.GiftOffer)(nil)).
		Set("status = ?", models.GiftConfirmed).
		Set("resolved_at = ?", at).
		Where("id = ?", offerID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark offer confirmed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit gift: %w", err)
	}
	return nil
}

func (r *giftRepository) Cancel(ctx context.Context, offerID int64, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.GiftOffer)(nil)).
		Set("status = ?", models.GiftCancelled).
		Set("resolved_at = ?", at).
		Where("id = ? AND status = ?", offerID, models.GiftPending).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to cancel gift offer: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		exists, err := r.db.NewSelect().
			Model((*models.GiftOffer)(nil)).
			Where("id = ?", offerID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check gift offer: %w", err)
		}
		if !exists {
			return game.ErrNotFound
		}
		return game.ErrOfferResolved
	}
	return nil
}

func (r *giftRepository) PendingFrom(ctx context.Context, chatID, fromUser string) ([]*models.GiftOffer, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var offers []*models.GiftOffer
	err := r.db.NewSelect().
		Model(&offers).
		Where("chat_id = ? AND from_user = ? AND status = ?", chatID, fromUser, models.GiftPending).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending offers: %w", err)
	}
	return offers, nil
}
