package hunterbot

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/hunterdex/hunterbot/hunterbot/database"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log   LogConfig         `toml:"log"`
	Bot   BotConfig         `toml:"bot"`
	DB    database.DBConfig `toml:"db"`
	Spawn SpawnConfig       `toml:"spawn"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
	OwnerID   snowflake.ID   `toml:"owner_id"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

// SpawnConfig overrides the built-in spawn weights; a missing or empty
// table keeps the defaults.
type SpawnConfig struct {
	Weights map[string]float64 `toml:"weights"`
}
