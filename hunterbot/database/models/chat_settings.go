package models

import "github.com/uptrace/bun"

// ChatSettings holds per-chat spawn configuration and the message counter
// driving spawns. Rows are created lazily with defaults on first reference.
type ChatSettings struct {
	bun.BaseModel `bun:"table:chat_settings,alias:cs"`

	ChatID       string `bun:"chat_id,pk"`
	SpawnEnabled bool   `bun:"spawn_enabled,notnull"`
	SpawnEvery   int    `bun:"spawn_every,notnull"`
	MsgCounter   int64  `bun:"msg_counter,notnull"`
}
