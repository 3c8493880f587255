package hunterbot

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"

	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/database"
	"github.com/hunterdex/hunterbot/hunterbot/database/repositories"
	"github.com/hunterdex/hunterbot/hunterbot/game"
	"github.com/hunterdex/hunterbot/hunterbot/services"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	DB        *database.DB

	CardRepository      repositories.CardRepository
	SpawnRepository     repositories.SpawnRepository
	InventoryRepository repositories.InventoryRepository
	SettingsRepository  repositories.SettingsRepository
	GiftRepository      repositories.GiftRepository
	FavoriteRepository  repositories.FavoriteRepository
	UploaderRepository  repositories.UploaderRepository

	SpawnManager  *game.SpawnManager
	ClaimEngine   *game.ClaimEngine
	GiftManager   *game.GiftManager
	Ledger        *game.Ledger
	CoverSelector *game.CoverSelector

	CollectionService *services.CollectionService
	StatsService      *services.StatsService
	SearchService     *services.SearchService
}

// SetupGame builds repositories, engines and services on top of an open
// database handle. Call before SetupBot.
func (b *Bot) SetupGame(db *database.DB) {
	b.DB = db

	b.CardRepository = repositories.NewCardRepository(db.BunDB())
	b.SpawnRepository = repositories.NewSpawnRepository(db.BunDB())
	b.InventoryRepository = repositories.NewInventoryRepository(db.BunDB())
	b.SettingsRepository = repositories.NewSettingsRepository(db.BunDB())
	b.GiftRepository = repositories.NewGiftRepository(db.BunDB())
	b.FavoriteRepository = repositories.NewFavoriteRepository(db.BunDB())
	b.UploaderRepository = repositories.NewUploaderRepository(db.BunDB())

	rarity := game.NewRaritySelector(b.Cfg.Spawn.Weights)
	b.SpawnManager = game.NewSpawnManager(b.CardRepository, b.SpawnRepository, b.SettingsRepository, rarity)
	b.ClaimEngine = game.NewClaimEngine(b.CardRepository, b.SpawnRepository, b.InventoryRepository, config.MaxInventoryCapacity)
	b.GiftManager = game.NewGiftManager(b.InventoryRepository, b.GiftRepository)
	b.Ledger = game.NewLedger(b.InventoryRepository, config.MaxInventoryCapacity)
	b.CoverSelector = game.NewCoverSelector(b.FavoriteRepository, b.InventoryRepository, b.CardRepository)

	b.CollectionService = services.NewCollectionService(b.Ledger, b.CoverSelector)
	b.StatsService = services.NewStatsService(b.CardRepository, b.InventoryRepository)
	b.SearchService = services.NewSearchService(b.CardRepository)
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds, gateway.IntentGuildMessages, gateway.IntentMessageContent)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("HunterBot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("wild cards appear"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}

// IsOwner reports whether the user is the configured bot owner.
func (b *Bot) IsOwner(userID string) bool {
	return b.Cfg.Bot.OwnerID != 0 && b.Cfg.Bot.OwnerID.String() == userID
}

// CanUpload reports whether the user may manage the card catalog: the
// owner always, otherwise anyone on the uploader roster.
func (b *Bot) CanUpload(ctx context.Context, userID string) (bool, error) {
	if b.IsOwner(userID) {
		return true, nil
	}
	return b.UploaderRepository.IsUploader(ctx, userID)
}
