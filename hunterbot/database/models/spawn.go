package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ActiveSpawn is the single spawn slot of a chat. The chat_id primary key
// enforces at most one slot per chat; a row with claimed_by unset is a
// pending spawn and blocks further spawns in that chat.
type ActiveSpawn struct {
	bun.BaseModel `bun:"table:active_spawns,alias:sp"`

	ChatID       string     `bun:"chat_id,pk"`
	CardID       int64      `bun:"card_id,notnull"`
	SpawnedMsgID string     `bun:"spawned_msg_id,notnull"`
	SpawnedAt    time.Time  `bun:"spawned_at,notnull"`
	ClaimedBy    string     `bun:"claimed_by,nullzero"`
	ClaimedAt    *time.Time `bun:"claimed_at,nullzero"`
}

// Claimed reports whether the slot has been won already.
func (s *ActiveSpawn) Claimed() bool {
	return s.ClaimedBy != ""
}
