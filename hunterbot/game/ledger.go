package game

import (
	"context"
)

// Ledger fronts the inventory store with the capacity ceiling and input
// validation. It owns no state beyond the configured ceiling; every
// mutation's atomicity lives in the store.
type Ledger struct {
	store    LedgerStore
	capacity int
}

func NewLedger(store LedgerStore, capacity int) *Ledger {
	return &Ledger{store: store, capacity: capacity}
}

func (l *Ledger) CountForUser(ctx context.Context, userID string) (int, error) {
	return l.store.CountForUser(ctx, userID)
}

func (l *Ledger) CollectionCounts(ctx context.Context, chatID, userID string) ([]CollectionCount, error) {
	return l.store.CollectionCounts(ctx, chatID, userID)
}

// Grant appends up to qty records for the user, clamped to the headroom
// left under the ceiling. Returns how many were actually applied.
func (l *Ledger) Grant(ctx context.Context, userID, chatID string, cardID int64, qty int) (int, error) {
	if qty <= 0 {
		return 0, ErrInvalidInput
	}
	return l.store.Grant(ctx, userID, chatID, cardID, qty, l.capacity)
}

// Reset wipes the user's records everywhere and reports how many were
// removed. Irreversible.
func (l *Ledger) Reset(ctx context.Context, userID string) (int64, error) {
	return l.store.Reset(ctx, userID)
}

// RemoveOne deletes a single unit of the card from the user, oldest
// record first. ErrNotOwned when the user has none.
func (l *Ledger) RemoveOne(ctx context.Context, userID string, cardID int64) error {
	return l.store.RemoveOldest(ctx, userID, cardID)
}

func (l *Ledger) OwnsInChat(ctx context.Context, chatID, userID string, cardID int64) (bool, error) {
	return l.store.Owns(ctx, chatID, userID, cardID)
}

// Capacity returns the configured ceiling, for display.
func (l *Ledger) Capacity() int {
	return l.capacity
}
