package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/hunterdex/hunterbot/hunterbot"
	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/game"
	"github.com/hunterdex/hunterbot/hunterbot/utils"
)

var Check = discord.SlashCommandCreate{
	Name:        "check",
	Description: "🔍 Circulation stats for a card",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "id",
			Description: "Card id",
			Required:    true,
		},
	},
}

func CheckHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		cardID := int64(e.SlashCommandInteractionData().Int("id"))

		ctx, cancel := context.WithTimeout(context.Background(), config.StatsQueryTimeout)
		defer cancel()

		stats, err := b.StatsService.CardStats(ctx, cardID)
		switch {
		case err == nil:
		case errors.Is(err, game.ErrNotFound):
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("No card with id %d exists.", cardID))
		default:
			return utils.EH.CreateError(e, "Check failed", "Could not load card stats.")
		}

		var description strings.Builder
		description.WriteString(utils.FormatCardCaption(stats.Card) + "\n\n")
		fmt.Fprintf(&description, "Copies in circulation: **%d**\n", stats.TotalOwned)
		fmt.Fprintf(&description, "Unique owners: **%d**\n", stats.UniqueOwned)

		if len(stats.TopOwners) > 0 {
			description.WriteString("\n**Top owners**\n")
			for i, owner := range stats.TopOwners {
				fmt.Fprintf(&description, "%d. <@%s> — x%d\n", i+1, owner.UserID, owner.Count)
			}
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("🔍 %s", stats.Card.Name),
				Description: description.String(),
				Color:       config.InfoColor,
				Thumbnail:   &discord.EmbedResource{URL: stats.Card.ImageRef},
			}},
		})
	}
}
