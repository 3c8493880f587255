package game

import (
	"context"
	"fmt"
	"time"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

// ClaimResult is what a winning claim hands back for rendering.
type ClaimResult struct {
	Card      *models.Card
	ChatID    string
	ClaimedAt time.Time
}

// ClaimEngine validates guesses against the chat's pending spawn and
// commits the win. Exactly one claimant succeeds per spawn: the decisive
// check is the store's conditional update at commit time, not the read
// at the top, so concurrent guesses from any number of processes are safe.
type ClaimEngine struct {
	cards    CardStore
	spawns   SpawnStore
	ledger   LedgerStore
	capacity int
	now      func() time.Time
}

func NewClaimEngine(cards CardStore, spawns SpawnStore, ledger LedgerStore, capacity int) *ClaimEngine {
	return &ClaimEngine{
		cards:    cards,
		spawns:   spawns,
		ledger:   ledger,
		capacity: capacity,
		now:      time.Now,
	}
}

// AttemptClaim resolves one guess. Outcomes: success, ErrNoActiveSpawn,
// ErrAlreadyClaimed, ErrWrongGuess or ErrCapacityFull.
func (e *ClaimEngine) AttemptClaim(ctx context.Context, chatID, userID, guess string) (*ClaimResult, error) {
	slot, err := e.spawns.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if slot.Claimed() {
		return nil, ErrAlreadyClaimed
	}

	card, err := e.cards.GetByID(ctx, slot.CardID)
	if err != nil {
		return nil, fmt.Errorf("spawned card lookup: %w", err)
	}

	if !NameMatches(guess, card.Name) {
		return nil, ErrWrongGuess
	}

	// Cheap pre-check; the commit re-counts inside its transaction.
	count, err := e.ledger.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= e.capacity {
		return nil, ErrCapacityFull
	}

	at := e.now()
	claimed, err := e.spawns.Claim(ctx, chatID, userID, at, e.capacity)
	if err != nil {
		return nil, err
	}

	return &ClaimResult{
		Card:      card,
		ChatID:    claimed.ChatID,
		ClaimedAt: at,
	}, nil
}
