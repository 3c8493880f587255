package game

import (
	"context"
	"time"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

// The engine talks to storage through these interfaces. The postgres
// implementations live in database/repositories; tests use in-memory
// fakes. Cross-process invariants (one winner per spawn, the capacity
// ceiling) are the store's responsibility: Claim, Grant and Execute must
// be atomic, not assembled from separate reads and writes.

type CardStore interface {
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	// Random draws are uniform. Both return ErrNoCardsAvailable when the
	// candidate set is empty.
	Random(ctx context.Context) (*models.Card, error)
	RandomByRarity(ctx context.Context, rarity string) (*models.Card, error)
}

type SpawnStore interface {
	// Get returns ErrNoActiveSpawn when the chat has no slot.
	Get(ctx context.Context, chatID string) (*models.ActiveSpawn, error)
	// Install writes a fresh pending slot, replacing a claimed remnant.
	// It returns ErrSpawnBlocked while an unclaimed slot is present.
	Install(ctx context.Context, spawn *models.ActiveSpawn) error
	// Claim is the commit primitive: in one transaction it re-checks the
	// claimer's capacity, sets (claimed_by, claimed_at) only if the slot
	// is still unclaimed, and appends one inventory record. It returns
	// ErrNoActiveSpawn, ErrAlreadyClaimed or ErrCapacityFull.
	Claim(ctx context.Context, chatID, userID string, at time.Time, capacity int) (*models.ActiveSpawn, error)
	// Clear unconditionally removes the slot.
	Clear(ctx context.Context, chatID string) error
}

type LedgerStore interface {
	// CountForUser counts records across all chats; it gates the ceiling.
	CountForUser(ctx context.Context, userID string) (int, error)
	// CollectionCounts groups a user's records in a chat by card, ordered
	// by series (case-insensitive) then card id.
	CollectionCounts(ctx context.Context, chatID, userID string) ([]CollectionCount, error)
	// Grant appends up to qty records, clamped to the user's headroom
	// under capacity within the same transaction. Returns the applied count.
	Grant(ctx context.Context, userID, chatID string, cardID int64, qty, capacity int) (int, error)
	// Reset deletes every record of the user and returns how many.
	Reset(ctx context.Context, userID string) (int64, error)
	// RemoveOldest deletes the user's oldest record of the card, in any
	// chat. Returns ErrNotOwned when there is none.
	RemoveOldest(ctx context.Context, userID string, cardID int64) error
	Owns(ctx context.Context, chatID, userID string, cardID int64) (bool, error)
	// LatestCardID returns the most recently obtained card in the chat,
	// or ErrNotFound when the user owns nothing there.
	LatestCardID(ctx context.Context, chatID, userID string) (int64, error)
}

type SettingsStore interface {
	// GetOrCreate lazily creates the row with defaults.
	GetOrCreate(ctx context.Context, chatID string) (*models.ChatSettings, error)
	SetEnabled(ctx context.Context, chatID string, enabled bool) error
	SetInterval(ctx context.Context, chatID string, every int) error
	// IncrementCounter bumps msg_counter atomically and returns the
	// settings row with the new counter value.
	IncrementCounter(ctx context.Context, chatID string) (*models.ChatSettings, error)
}

type GiftStore interface {
	Create(ctx context.Context, offer *models.GiftOffer) error
	GetByID(ctx context.Context, id int64) (*models.GiftOffer, error)
	// Execute moves one unit from sender to receiver in one transaction,
	// re-validating sender ownership under a row lock. It returns
	// ErrOfferResolved or ErrNoLongerOwned with no mutation on failure.
	Execute(ctx context.Context, offerID int64, at time.Time) error
	// Cancel marks a pending offer cancelled; ErrOfferResolved otherwise.
	Cancel(ctx context.Context, offerID int64, at time.Time) error
}

type FavoriteStore interface {
	Set(ctx context.Context, userID string, cardID int64) error
	// Get returns ErrNotFound when the user has no favorite.
	Get(ctx context.Context, userID string) (int64, error)
}

// CollectionCount is one card's share of a user's collection in a chat.
type CollectionCount struct {
	CardID int64
	Name   string
	Series string
	Rarity string
	Event  string
	Count  int
}
