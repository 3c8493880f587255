package game

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

// PublishFunc delivers a freshly drawn card to the chat and returns the
// id of the message it posted. The transport layer supplies it; the
// manager never talks to the chat platform directly.
type PublishFunc func(card *models.Card) (messageID string, err error)

// SpawnStatus is the operational view of a chat's spawn state.
type SpawnStatus struct {
	Settings *models.ChatSettings
	Slot     *models.ActiveSpawn // nil when no slot exists
}

// SpawnManager runs the per-chat single-slot state machine. A chat's slot
// is Empty, Pending (unclaimed) or Claimed; a pending slot blocks new
// spawns until it is claimed or force-cleared.
type SpawnManager struct {
	cards    CardStore
	spawns   SpawnStore
	settings SettingsStore
	rarity   *RaritySelector
	now      func() time.Time
}

func NewSpawnManager(cards CardStore, spawns SpawnStore, settings SettingsStore, rarity *RaritySelector) *SpawnManager {
	return &SpawnManager{
		cards:    cards,
		spawns:   spawns,
		settings: settings,
		rarity:   rarity,
		now:      time.Now,
	}
}

// Trigger draws a card, publishes it and installs a pending slot for the
// chat. It returns ErrSpawnBlocked while an unclaimed spawn is present
// and ErrNoCardsAvailable when the catalog is empty.
func (m *SpawnManager) Trigger(ctx context.Context, chatID string, publish PublishFunc) (*models.Card, error) {
	slot, err := m.spawns.Get(ctx, chatID)
	if err != nil && !errors.Is(err, ErrNoActiveSpawn) {
		return nil, err
	}
	if slot != nil && !slot.Claimed() {
		return nil, ErrSpawnBlocked
	}

	card, err := m.drawCard(ctx)
	if err != nil {
		return nil, err
	}

	msgID, err := publish(card)
	if err != nil {
		return nil, err
	}

	// Install re-checks the pending rule under a row lock; a concurrent
	// trigger that won the race surfaces here as ErrSpawnBlocked.
	if err := m.spawns.Install(ctx, &models.ActiveSpawn{
		ChatID:       chatID,
		CardID:       card.ID,
		SpawnedMsgID: msgID,
		SpawnedAt:    m.now(),
	}); err != nil {
		return nil, err
	}

	return card, nil
}

func (m *SpawnManager) drawCard(ctx context.Context) (*models.Card, error) {
	tier := m.rarity.DrawRarity()

	card, err := m.cards.RandomByRarity(ctx, tier)
	if errors.Is(err, ErrNoCardsAvailable) {
		// Empty tier: fall back to a uniform draw over the whole catalog.
		card, err = m.cards.Random(ctx)
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// ForceClear removes the chat's slot regardless of state. Admin escape
// hatch for stuck spawns.
func (m *SpawnManager) ForceClear(ctx context.Context, chatID string) error {
	return m.spawns.Clear(ctx, chatID)
}

// Status reports settings plus slot presence and claim state.
func (m *SpawnManager) Status(ctx context.Context, chatID string) (*SpawnStatus, error) {
	settings, err := m.settings.GetOrCreate(ctx, chatID)
	if err != nil {
		return nil, err
	}

	slot, err := m.spawns.Get(ctx, chatID)
	if err != nil && !errors.Is(err, ErrNoActiveSpawn) {
		return nil, err
	}

	return &SpawnStatus{Settings: settings, Slot: slot}, nil
}

// SetEnabled toggles spawning for the chat.
func (m *SpawnManager) SetEnabled(ctx context.Context, chatID string, enabled bool) error {
	if _, err := m.settings.GetOrCreate(ctx, chatID); err != nil {
		return err
	}
	return m.settings.SetEnabled(ctx, chatID, enabled)
}

// SetInterval sets how many messages elapse between spawns.
func (m *SpawnManager) SetInterval(ctx context.Context, chatID string, every int) error {
	if every < 1 {
		return ErrInvalidInput
	}
	if _, err := m.settings.GetOrCreate(ctx, chatID); err != nil {
		return err
	}
	return m.settings.SetInterval(ctx, chatID, every)
}

// HandleMessage counts one qualifying chat message and fires a spawn when
// the counter reaches a multiple of the interval. Command messages
// (leading slash) are not counted. It returns (nil, nil) when no spawn
// was due.
func (m *SpawnManager) HandleMessage(ctx context.Context, chatID, text string, publish PublishFunc) (*models.Card, error) {
	if strings.HasPrefix(text, "/") {
		return nil, nil
	}

	settings, err := m.settings.IncrementCounter(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !settings.SpawnEnabled || settings.SpawnEvery <= 0 {
		return nil, nil
	}
	if settings.MsgCounter%int64(settings.SpawnEvery) != 0 {
		return nil, nil
	}

	return m.Trigger(ctx, chatID, publish)
}
