package logger

import (
	"log/slog"
	"time"
)

// LogQuery logs database operations
func LogQuery(query string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Query failed", append(attrs,
			slog.String("query", query),
			slog.Any("error", err),
		)...)
	} else {
		slog.Debug("Query executed", append(attrs,
			slog.String("query", query),
		)...)
	}
}

// LogSpawn logs spawn lifecycle events
func LogSpawn(chatID string, cardID int64, err error) {
	attrs := []any{
		slog.String("type", "spawn"),
		slog.String("chat_id", chatID),
		slog.Int64("card_id", cardID),
	}

	if err != nil {
		slog.Error("Spawn failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Info("Card spawned", attrs...)
	}
}
