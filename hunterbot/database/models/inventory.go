package models

import (
	"time"

	"github.com/uptrace/bun"
)

// InventoryRecord is one unit of ownership of a card by a user within a
// chat. Ownership is multiset-valued: the same (user, chat, card) triple
// may appear on any number of rows.
type InventoryRecord struct {
	bun.BaseModel `bun:"table:inventory,alias:inv"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     string    `bun:"user_id,notnull"`
	ChatID     string    `bun:"chat_id,notnull"`
	CardID     int64     `bun:"card_id,notnull"`
	ObtainedAt time.Time `bun:"obtained_at,notnull"`
}
