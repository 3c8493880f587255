package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"

	"github.com/hunterdex/hunterbot/hunterbot"
	"github.com/hunterdex/hunterbot/hunterbot/commands"
	"github.com/hunterdex/hunterbot/hunterbot/commands/admin"
	"github.com/hunterdex/hunterbot/hunterbot/database"
	"github.com/hunterdex/hunterbot/hunterbot/handlers"
	"github.com/hunterdex/hunterbot/hunterbot/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler()))

	slog.Info("Starting HunterBot",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := hunterbot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("type", "db"),
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("type", "db"),
			slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Database ready",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	b := hunterbot.New(*cfg, version, commit)
	b.SetupGame(db)

	h := handler.New()

	// Player commands
	h.Command("/hunt", handlers.WrapWithLogging("hunt", commands.HuntHandler(b)))
	h.Command("/harem", handlers.WrapWithLogging("harem", commands.HaremHandler(b)))
	h.Command("/fav", handlers.WrapWithLogging("fav", commands.FavHandler(b)))
	h.Command("/gift", handlers.WrapWithLogging("gift", commands.GiftHandler(b)))
	h.Component("/gift/", handlers.WrapComponentWithLogging("gift", commands.GiftButtonHandler(b)))
	h.Command("/rarity", handlers.WrapWithLogging("rarity", commands.RarityHandler(b)))
	h.Command("/check", handlers.WrapWithLogging("check", commands.CheckHandler(b)))
	h.Command("/search", handlers.WrapWithLogging("search", commands.SearchHandler(b)))

	// Admin commands
	h.Command("/spawnsettings", handlers.WrapWithLogging("spawnsettings", admin.SpawnSettingsHandler(b)))
	h.Command("/spawnstatus", handlers.WrapWithLogging("spawnstatus", admin.SpawnStatusHandler(b)))
	h.Command("/forcespawn", handlers.WrapWithLogging("forcespawn", admin.ForceSpawnHandler(b)))
	h.Command("/clearspawn", handlers.WrapWithLogging("clearspawn", admin.ClearSpawnHandler(b)))
	h.Command("/grant", handlers.WrapWithLogging("grant", admin.GrantHandler(b)))
	h.Command("/resetuser", handlers.WrapWithLogging("resetuser", admin.ResetUserHandler(b)))
	h.Command("/uploadcard", handlers.WrapWithLogging("uploadcard", admin.UploadCardHandler(b)))
	h.Command("/updatecard", handlers.WrapWithLogging("updatecard", admin.UpdateCardHandler(b)))
	h.Command("/deletecard", handlers.WrapWithLogging("deletecard", admin.DeleteCardHandler(b)))
	h.Command("/adduploader", handlers.WrapWithLogging("adduploader", admin.AddUploaderHandler(b)))
	h.Command("/removeuploader", handlers.WrapWithLogging("removeuploader", admin.RemoveUploaderHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady), handlers.MessageListener(b.SpawnManager)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("status", "failed"))
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("error_details", fmt.Sprintf("%+v", err)))
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("status", "failed"))
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")
}
