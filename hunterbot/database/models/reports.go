package models

// DeletionReport summarizes what a card deletion swept away.
type DeletionReport struct {
	CardID           int64
	InventoryRemoved int64
	SpawnsRemoved    int64
}

// CardOwner is one row of a card's ownership leaderboard.
type CardOwner struct {
	UserID string `bun:"user_id"`
	Count  int    `bun:"count"`
}
