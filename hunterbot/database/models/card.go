package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Rarity tier keys, lowest first. Spawn weights live in the game package;
// display metadata lives in utils.
const (
	RarityCommon       = "common"
	RarityRare         = "rare"
	RarityEpic         = "epic"
	RarityLegendary    = "legendary"
	RarityFlat         = "flat"
	RarityTranscendent = "transcendent"
	RarityCosmic       = "cosmic"
	RarityInfinity     = "infinity"
	RarityOblivion     = "oblivion"
)

// RarityTiers is every valid tier, ordered lowest to highest.
var RarityTiers = []string{
	RarityCommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityFlat,
	RarityTranscendent,
	RarityCosmic,
	RarityInfinity,
	RarityOblivion,
}

// EventNone is the "no event" sentinel. Events are descriptive only and
// never affect spawn weighting.
const EventNone = "none"

type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID            int64     `bun:"id,pk,autoincrement"`
	Name          string    `bun:"name,notnull"`
	Series        string    `bun:"series,notnull"`
	Rarity        string    `bun:"rarity,notnull"`
	Event         string    `bun:"event,notnull,default:'none'"`
	ImageRef      string    `bun:"image_ref,notnull"`
	ChannelPostID int64     `bun:"channel_post_id,nullzero"`
	UploadedBy    string    `bun:"uploaded_by,notnull"`
	UploadedAt    time.Time `bun:"uploaded_at,notnull,default:current_timestamp"`
}

// ValidRarity reports whether key names a known tier.
func ValidRarity(key string) bool {
	for _, tier := range RarityTiers {
		if tier == key {
			return true
		}
	}
	return false
}
