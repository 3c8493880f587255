package models

import "github.com/uptrace/bun"

// Favorite is a user's chosen collection cover card. It is only effective
// in chats where the user still owns the card; otherwise it lies dormant
// and is never auto-cleared.
type Favorite struct {
	bun.BaseModel `bun:"table:favorites,alias:fav"`

	UserID string `bun:"user_id,pk"`
	CardID int64  `bun:"card_id,notnull"`
}
