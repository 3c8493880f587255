package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Uploader is a user allowed to add cards to the catalog.
type Uploader struct {
	bun.BaseModel `bun:"table:uploaders,alias:up"`

	UserID  string    `bun:"user_id,pk"`
	AddedBy string    `bun:"added_by,notnull"`
	AddedAt time.Time `bun:"added_at,notnull"`
}
