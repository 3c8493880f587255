package models

import (
	"time"

	"github.com/uptrace/bun"
)

type GiftStatus string

const (
	GiftPending   GiftStatus = "pending"
	GiftConfirmed GiftStatus = "confirmed"
	GiftCancelled GiftStatus = "cancelled"
	GiftVoided    GiftStatus = "voided"
)

// GiftOffer is a pending two-phase transfer of one inventory unit. Only
// the sender may confirm or cancel; ownership is re-validated at confirm
// time. Offers carry no expiry.
type GiftOffer struct {
	bun.BaseModel `bun:"table:gift_offers,alias:g"`

	ID         int64      `bun:"id,pk,autoincrement"`
	ChatID     string     `bun:"chat_id,notnull"`
	CardID     int64      `bun:"card_id,notnull"`
	FromUser   string     `bun:"from_user,notnull"`
	ToUser     string     `bun:"to_user,notnull"`
	Status     GiftStatus `bun:"status,notnull,default:'pending'"`
	CreatedAt  time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	ResolvedAt *time.Time `bun:"resolved_at,nullzero"`
}
