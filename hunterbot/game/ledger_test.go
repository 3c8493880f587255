package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

func TestGrant_ClampsToHeadroom(t *testing.T) {
	s := newMemStore()
	s.addCard(&models.Card{ID: 1, Name: "Rem", Rarity: models.RarityCommon})
	l := NewLedger(fakeLedger{s}, 5)

	applied, err := l.Grant(context.Background(), "u1", "chat-1", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	// Only two slots left under the ceiling.
	applied, err = l.Grant(context.Background(), "u1", "chat-1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	// At the ceiling a further grant applies nothing.
	applied, err = l.Grant(context.Background(), "u1", "chat-1", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	count, err := l.CountForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestGrant_RejectsNonPositiveQty(t *testing.T) {
	l := NewLedger(fakeLedger{newMemStore()}, 5)

	_, err := l.Grant(context.Background(), "u1", "chat-1", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = l.Grant(context.Background(), "u1", "chat-1", 1, -2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReset(t *testing.T) {
	s := newMemStore()
	s.addRecord("u1", "chat-1", 1, time.Now())
	s.addRecord("u1", "chat-2", 2, time.Now())
	s.addRecord("u2", "chat-1", 1, time.Now())
	l := NewLedger(fakeLedger{s}, 25)

	removed, err := l.Reset(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	count, err := l.CountForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, count)

	// Other users untouched.
	count, err = l.CountForUser(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRemoveOne_OldestFirst(t *testing.T) {
	s := newMemStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.addRecord("u1", "chat-1", 1, base.Add(time.Hour))
	s.addRecord("u1", "chat-2", 1, base) // oldest, different chat
	l := NewLedger(fakeLedger{s}, 25)

	require.NoError(t, l.RemoveOne(context.Background(), "u1", 1))

	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.inventory, 1)
	assert.Equal(t, "chat-1", s.inventory[0].ChatID, "the oldest record goes, regardless of chat")
}

func TestRemoveOne_NotOwned(t *testing.T) {
	l := NewLedger(fakeLedger{newMemStore()}, 25)
	assert.ErrorIs(t, l.RemoveOne(context.Background(), "u1", 1), ErrNotOwned)
}

func TestCollectionCounts(t *testing.T) {
	s := newMemStore()
	s.addCard(&models.Card{ID: 1, Name: "Rem", Series: "Re:Zero", Rarity: models.RarityCommon, Event: models.EventNone})
	s.addCard(&models.Card{ID: 2, Name: "Edward", Series: "FMA", Rarity: models.RarityRare, Event: models.EventNone})
	now := time.Now()
	s.addRecord("u1", "chat-1", 1, now)
	s.addRecord("u1", "chat-1", 1, now.Add(time.Minute))
	s.addRecord("u1", "chat-1", 2, now)
	s.addRecord("u1", "chat-2", 2, now) // other chat, excluded
	s.addRecord("u2", "chat-1", 1, now) // other user, excluded
	l := NewLedger(fakeLedger{s}, 25)

	counts, err := l.CollectionCounts(context.Background(), "chat-1", "u1")
	require.NoError(t, err)
	require.Len(t, counts, 2)

	// Ordered by series, case-insensitive.
	assert.Equal(t, "FMA", counts[0].Series)
	assert.Equal(t, 1, counts[0].Count)
	assert.Equal(t, "Re:Zero", counts[1].Series)
	assert.Equal(t, 2, counts[1].Count, "duplicates collapse into one line with a count")
}
