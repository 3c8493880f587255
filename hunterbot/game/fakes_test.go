package game

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

// memStore is an in-memory stand-in for the postgres repositories. The
// per-interface wrappers below share it; mutating operations hold one
// mutex so the atomicity contract of the store interfaces (single-winner
// claim, transactional gift execute) holds under the concurrency tests.
type memStore struct {
	mu          sync.Mutex
	cards       map[int64]*models.Card
	slots       map[string]*models.ActiveSpawn
	inventory   []*models.InventoryRecord
	nextInvID   int64
	settings    map[string]*models.ChatSettings
	offers      map[int64]*models.GiftOffer
	nextOfferID int64
	favorites   map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		cards:     make(map[int64]*models.Card),
		slots:     make(map[string]*models.ActiveSpawn),
		settings:  make(map[string]*models.ChatSettings),
		offers:    make(map[int64]*models.GiftOffer),
		favorites: make(map[string]int64),
	}
}

func (s *memStore) addCard(card *models.Card) {
	s.cards[card.ID] = card
}

func (s *memStore) addRecord(userID, chatID string, cardID int64, at time.Time) {
	s.nextInvID++
	s.inventory = append(s.inventory, &models.InventoryRecord{
		ID:         s.nextInvID,
		UserID:     userID,
		ChatID:     chatID,
		CardID:     cardID,
		ObtainedAt: at,
	})
}

func (s *memStore) countFor(userID string) int {
	n := 0
	for _, rec := range s.inventory {
		if rec.UserID == userID {
			n++
		}
	}
	return n
}

// removeOldest deletes the user's oldest record of cardID, optionally
// restricted to one chat. Caller holds the mutex.
func (s *memStore) removeOldest(userID, chatID string, cardID int64) error {
	oldest := -1
	for i, rec := range s.inventory {
		if rec.UserID != userID || rec.CardID != cardID {
			continue
		}
		if chatID != "" && rec.ChatID != chatID {
			continue
		}
		if oldest == -1 || rec.ObtainedAt.Before(s.inventory[oldest].ObtainedAt) {
			oldest = i
		}
	}
	if oldest == -1 {
		return ErrNotOwned
	}
	s.inventory = append(s.inventory[:oldest], s.inventory[oldest+1:]...)
	return nil
}

func (s *memStore) settingsRow(chatID string) *models.ChatSettings {
	if cur, ok := s.settings[chatID]; ok {
		return cur
	}
	created := &models.ChatSettings{
		ChatID:       chatID,
		SpawnEnabled: true,
		SpawnEvery:   100,
	}
	s.settings[chatID] = created
	return created
}

// fakeCards implements CardStore.

type fakeCards struct{ s *memStore }

func (f fakeCards) GetByID(_ context.Context, id int64) (*models.Card, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	card, ok := f.s.cards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return card, nil
}

func (f fakeCards) Random(_ context.Context) (*models.Card, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.pick(func(*models.Card) bool { return true })
}

func (f fakeCards) RandomByRarity(_ context.Context, rarity string) (*models.Card, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.pick(func(c *models.Card) bool { return c.Rarity == rarity })
}

// pick returns the matching card with the lowest id; uniformity is not
// under test here, emptiness handling is.
func (f fakeCards) pick(match func(*models.Card) bool) (*models.Card, error) {
	var ids []int64
	for id, c := range f.s.cards {
		if match(c) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ErrNoCardsAvailable
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return f.s.cards[ids[0]], nil
}

// fakeSpawns implements SpawnStore.

type fakeSpawns struct{ s *memStore }

func (f fakeSpawns) Get(_ context.Context, chatID string) (*models.ActiveSpawn, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	slot, ok := f.s.slots[chatID]
	if !ok {
		return nil, ErrNoActiveSpawn
	}
	cp := *slot
	return &cp, nil
}

func (f fakeSpawns) Install(_ context.Context, spawn *models.ActiveSpawn) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if cur, ok := f.s.slots[spawn.ChatID]; ok && !cur.Claimed() {
		return ErrSpawnBlocked
	}
	cp := *spawn
	f.s.slots[spawn.ChatID] = &cp
	return nil
}

func (f fakeSpawns) Claim(_ context.Context, chatID, userID string, at time.Time, capacity int) (*models.ActiveSpawn, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	slot, ok := f.s.slots[chatID]
	if !ok {
		return nil, ErrNoActiveSpawn
	}
	if slot.Claimed() {
		return nil, ErrAlreadyClaimed
	}
	if f.s.countFor(userID) >= capacity {
		return nil, ErrCapacityFull
	}

	slot.ClaimedBy = userID
	slot.ClaimedAt = &at
	f.s.addRecord(userID, chatID, slot.CardID, at)

	cp := *slot
	return &cp, nil
}

func (f fakeSpawns) Clear(_ context.Context, chatID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.slots, chatID)
	return nil
}

// fakeLedger implements LedgerStore.

type fakeLedger struct{ s *memStore }

func (f fakeLedger) CountForUser(_ context.Context, userID string) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.countFor(userID), nil
}

func (f fakeLedger) CollectionCounts(_ context.Context, chatID, userID string) ([]CollectionCount, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	counts := make(map[int64]int)
	for _, rec := range f.s.inventory {
		if rec.ChatID == chatID && rec.UserID == userID {
			counts[rec.CardID]++
		}
	}

	var out []CollectionCount
	for cardID, n := range counts {
		card := f.s.cards[cardID]
		out = append(out, CollectionCount{
			CardID: cardID,
			Name:   card.Name,
			Series: card.Series,
			Rarity: card.Rarity,
			Event:  card.Event,
			Count:  n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := strings.ToLower(out[i].Series), strings.ToLower(out[j].Series)
		if si != sj {
			return si < sj
		}
		return out[i].CardID < out[j].CardID
	})
	return out, nil
}

func (f fakeLedger) Grant(_ context.Context, userID, chatID string, cardID int64, qty, capacity int) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	headroom := capacity - f.s.countFor(userID)
	if headroom < 0 {
		headroom = 0
	}
	applied := qty
	if applied > headroom {
		applied = headroom
	}
	now := time.Now()
	for i := 0; i < applied; i++ {
		f.s.addRecord(userID, chatID, cardID, now)
	}
	return applied, nil
}

func (f fakeLedger) Reset(_ context.Context, userID string) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var kept []*models.InventoryRecord
	var removed int64
	for _, rec := range f.s.inventory {
		if rec.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	f.s.inventory = kept
	return removed, nil
}

func (f fakeLedger) RemoveOldest(_ context.Context, userID string, cardID int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.removeOldest(userID, "", cardID)
}

func (f fakeLedger) Owns(_ context.Context, chatID, userID string, cardID int64) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, rec := range f.s.inventory {
		if rec.ChatID == chatID && rec.UserID == userID && rec.CardID == cardID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeLedger) LatestCardID(_ context.Context, chatID, userID string) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	latest := -1
	for i, rec := range f.s.inventory {
		if rec.ChatID != chatID || rec.UserID != userID {
			continue
		}
		if latest == -1 || rec.ObtainedAt.After(f.s.inventory[latest].ObtainedAt) ||
			(rec.ObtainedAt.Equal(f.s.inventory[latest].ObtainedAt) && rec.ID > f.s.inventory[latest].ID) {
			latest = i
		}
	}
	if latest == -1 {
		return 0, ErrNotFound
	}
	return f.s.inventory[latest].CardID, nil
}

// fakeSettings implements SettingsStore.

type fakeSettings struct{ s *memStore }

func (f fakeSettings) GetOrCreate(_ context.Context, chatID string) (*models.ChatSettings, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *f.s.settingsRow(chatID)
	return &cp, nil
}

func (f fakeSettings) SetEnabled(_ context.Context, chatID string, enabled bool) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.settingsRow(chatID).SpawnEnabled = enabled
	return nil
}

func (f fakeSettings) SetInterval(_ context.Context, chatID string, every int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.settingsRow(chatID).SpawnEvery = every
	return nil
}

func (f fakeSettings) IncrementCounter(_ context.Context, chatID string) (*models.ChatSettings, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cur := f.s.settingsRow(chatID)
	cur.MsgCounter++
	cp := *cur
	return &cp, nil
}

// fakeGifts implements GiftStore.

type fakeGifts struct{ s *memStore }

func (f fakeGifts) Create(_ context.Context, offer *models.GiftOffer) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.nextOfferID++
	offer.ID = f.s.nextOfferID
	cp := *offer
	f.s.offers[offer.ID] = &cp
	return nil
}

func (f fakeGifts) GetByID(_ context.Context, id int64) (*models.GiftOffer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	offer, ok := f.s.offers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *offer
	return &cp, nil
}

func (f fakeGifts) Execute(_ context.Context, offerID int64, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	offer, ok := f.s.offers[offerID]
	if !ok {
		return ErrNotFound
	}
	if offer.Status != models.GiftPending {
		return ErrOfferResolved
	}

	if err := f.s.removeOldest(offer.FromUser, offer.ChatID, offer.CardID); err != nil {
		return ErrNoLongerOwned
	}
	f.s.addRecord(offer.ToUser, offer.ChatID, offer.CardID, at)

	offer.Status = models.GiftConfirmed
	offer.ResolvedAt = &at
	return nil
}

func (f fakeGifts) Cancel(_ context.Context, offerID int64, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	offer, ok := f.s.offers[offerID]
	if !ok {
		return ErrNotFound
	}
	if offer.Status != models.GiftPending {
		return ErrOfferResolved
	}
	offer.Status = models.GiftCancelled
	offer.ResolvedAt = &at
	return nil
}

// fakeFavorites implements FavoriteStore.

type fakeFavorites struct{ s *memStore }

func (f fakeFavorites) Set(_ context.Context, userID string, cardID int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.favorites[userID] = cardID
	return nil
}

func (f fakeFavorites) Get(_ context.Context, userID string) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cardID, ok := f.s.favorites[userID]
	if !ok {
		return 0, ErrNotFound
	}
	return cardID, nil
}
