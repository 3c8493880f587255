package game

import (
	"context"
	"time"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

// GiftManager runs the two-phase ownership transfer: propose, then
// confirm or cancel by the original sender. The debit and credit halves
// happen in one store transaction at confirm time, after re-validating
// that the sender still owns the card.
type GiftManager struct {
	ledger LedgerStore
	gifts  GiftStore
	now    func() time.Time
}

func NewGiftManager(ledger LedgerStore, gifts GiftStore) *GiftManager {
	return &GiftManager{
		ledger: ledger,
		gifts:  gifts,
		now:    time.Now,
	}
}

// Propose opens a pending offer of one unit of cardID from fromUser to
// toUser within the chat. The sender must currently own the card there.
func (m *GiftManager) Propose(ctx context.Context, chatID string, cardID int64, fromUser, toUser string) (*models.GiftOffer, error) {
	if fromUser == toUser {
		return nil, ErrInvalidInput
	}

	owns, err := m.ledger.Owns(ctx, chatID, fromUser, cardID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrNotOwned
	}

	offer := &models.GiftOffer{
		ChatID:    chatID,
		CardID:    cardID,
		FromUser:  fromUser,
		ToUser:    toUser,
		Status:    models.GiftPending,
		CreatedAt: m.now(),
	}
	if err := m.gifts.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// Confirm executes a pending offer. Only the sender may confirm;
// ownership is re-checked inside the store transaction, so a sender who
// lost the card since proposing gets ErrNoLongerOwned and nothing moves.
func (m *GiftManager) Confirm(ctx context.Context, offerID int64, caller string) (*models.GiftOffer, error) {
	offer, err := m.gifts.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.FromUser != caller {
		return nil, ErrUnauthorized
	}
	if offer.Status != models.GiftPending {
		return nil, ErrOfferResolved
	}

	if err := m.gifts.Execute(ctx, offerID, m.now()); err != nil {
		return nil, err
	}

	return m.gifts.GetByID(ctx, offerID)
}

// Cancel discards a pending offer with no ledger effect. Sender only.
func (m *GiftManager) Cancel(ctx context.Context, offerID int64, caller string) error {
	offer, err := m.gifts.GetByID(ctx, offerID)
	if err != nil {
		return err
	}
	if offer.FromUser != caller {
		return ErrUnauthorized
	}
	return m.gifts.Cancel(ctx, offerID, m.now())
}
