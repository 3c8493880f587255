package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

func testGiftManager(s *memStore) *GiftManager {
	m := NewGiftManager(fakeLedger{s}, fakeGifts{s})
	m.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return m
}

func giftFixture(t *testing.T) (*memStore, *GiftManager, *models.GiftOffer) {
	t.Helper()
	s := newMemStore()
	s.addCard(&models.Card{ID: 1, Name: "Rem", Rarity: models.RarityCommon})
	s.addRecord("alice", "chat-1", 1, time.Now())

	m := testGiftManager(s)
	offer, err := m.Propose(context.Background(), "chat-1", 1, "alice", "bob")
	require.NoError(t, err)
	return s, m, offer
}

func TestPropose(t *testing.T) {
	s, _, offer := giftFixture(t)

	assert.Equal(t, models.GiftPending, offer.Status)
	assert.Equal(t, "alice", offer.FromUser)
	assert.Equal(t, "bob", offer.ToUser)
	assert.NotZero(t, offer.ID)

	// Proposing moves nothing yet.
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.inventory, 1)
	assert.Equal(t, "alice", s.inventory[0].UserID)
}

func TestPropose_Rejections(t *testing.T) {
	s := newMemStore()
	s.addCard(&models.Card{ID: 1, Name: "Rem", Rarity: models.RarityCommon})
	s.addRecord("alice", "chat-1", 1, time.Now())
	m := testGiftManager(s)

	_, err := m.Propose(context.Background(), "chat-1", 1, "alice", "alice")
	assert.ErrorIs(t, err, ErrInvalidInput, "self-gift")

	_, err = m.Propose(context.Background(), "chat-1", 1, "bob", "alice")
	assert.ErrorIs(t, err, ErrNotOwned, "sender owns nothing")

	_, err = m.Propose(context.Background(), "chat-2", 1, "alice", "bob")
	assert.ErrorIs(t, err, ErrNotOwned, "ownership is per chat")
}

func TestConfirm_MovesExactlyOneUnit(t *testing.T) {
	s, m, offer := giftFixture(t)
	// Alice holds a second copy; only one may move.
	s.addRecord("alice", "chat-1", 1, time.Now().Add(time.Minute))

	got, err := m.Confirm(context.Background(), offer.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.GiftConfirmed, got.Status)
	require.NotNil(t, got.ResolvedAt)

	ctx := context.Background()
	aliceOwns, err := fakeLedger{s}.Owns(ctx, "chat-1", "alice", 1)
	require.NoError(t, err)
	assert.True(t, aliceOwns, "second copy stays with the sender")

	bobOwns, err := fakeLedger{s}.Owns(ctx, "chat-1", "bob", 1)
	require.NoError(t, err)
	assert.True(t, bobOwns)

	// Conservation: two records before, two after.
	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Len(t, s.inventory, 2)
}

func TestConfirm_OnlySender(t *testing.T) {
	_, m, offer := giftFixture(t)

	_, err := m.Confirm(context.Background(), offer.ID, "bob")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = m.Confirm(context.Background(), offer.ID, "mallory")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestConfirm_Twice(t *testing.T) {
	_, m, offer := giftFixture(t)

	_, err := m.Confirm(context.Background(), offer.ID, "alice")
	require.NoError(t, err)

	_, err = m.Confirm(context.Background(), offer.ID, "alice")
	assert.ErrorIs(t, err, ErrOfferResolved)
}

func TestConfirm_SenderNoLongerOwns(t *testing.T) {
	s, m, offer := giftFixture(t)
	// The card left Alice's hands between propose and confirm.
	require.NoError(t, fakeLedger{s}.RemoveOldest(context.Background(), "alice", 1))

	_, err := m.Confirm(context.Background(), offer.ID, "alice")
	require.ErrorIs(t, err, ErrNoLongerOwned)

	// Nothing moved and the offer stays pending until cancelled.
	got, err := fakeGifts{s}.GetByID(context.Background(), offer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GiftPending, got.Status)

	bobOwns, err := fakeLedger{s}.Owns(context.Background(), "chat-1", "bob", 1)
	require.NoError(t, err)
	assert.False(t, bobOwns)
}

func TestCancel(t *testing.T) {
	s, m, offer := giftFixture(t)

	require.NoError(t, m.Cancel(context.Background(), offer.ID, "alice"))

	got, err := fakeGifts{s}.GetByID(context.Background(), offer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GiftCancelled, got.Status)

	// A cancelled offer cannot be confirmed.
	_, err = m.Confirm(context.Background(), offer.ID, "alice")
	assert.ErrorIs(t, err, ErrOfferResolved)

	// And the card never moved.
	aliceOwns, err := fakeLedger{s}.Owns(context.Background(), "chat-1", "alice", 1)
	require.NoError(t, err)
	assert.True(t, aliceOwns)
}

func TestCancel_OnlySender(t *testing.T) {
	_, m, offer := giftFixture(t)
	assert.ErrorIs(t, m.Cancel(context.Background(), offer.ID, "bob"), ErrUnauthorized)
}

func TestGift_UnknownOffer(t *testing.T) {
	_, m, _ := giftFixture(t)

	_, err := m.Confirm(context.Background(), 999, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Cancel(context.Background(), 999, "alice"), ErrNotFound)
}
