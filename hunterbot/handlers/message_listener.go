package handlers

import (
	"context"
	"errors"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"

	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/database/models"
	"github.com/hunterdex/hunterbot/hunterbot/game"
	"github.com/hunterdex/hunterbot/hunterbot/logger"
	"github.com/hunterdex/hunterbot/hunterbot/utils"
)

// MessageListener feeds guild messages into the spawn counter and posts
// the spawn announcement when one fires. Bot messages and slash commands
// never advance the counter.
func MessageListener(spawns *game.SpawnManager) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.MessageCreate) {
		if e.Message.Author.Bot || e.GuildID == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		chatID := e.ChannelID.String()
		card, err := spawns.HandleMessage(ctx, chatID, e.Message.Content, func(card *models.Card) (string, error) {
			msg, err := e.Client().Rest().CreateMessage(e.ChannelID, discord.MessageCreate{
				Embeds: []discord.Embed{{
					Title:       "🎴 A wild card appeared!",
					Description: "Guess the name with `/hunt` to claim it.\nRarity: " + utils.FormatRarity(card.Rarity),
					Color:       config.SpawnColor,
					Image:       &discord.EmbedResource{URL: card.ImageRef},
				}},
			})
			if err != nil {
				return "", err
			}
			return msg.ID.String(), nil
		})

		switch {
		case err == nil:
			if card != nil {
				logger.LogSpawn(chatID, card.ID, nil)
			}
		case errors.Is(err, game.ErrSpawnBlocked), errors.Is(err, game.ErrNoCardsAvailable):
			// A pending spawn or an empty catalog is routine, not a failure.
		default:
			logger.LogSpawn(chatID, 0, err)
		}
	})
}
