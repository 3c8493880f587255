package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/hunterdex/hunterbot/hunterbot"
	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/game"
	"github.com/hunterdex/hunterbot/hunterbot/utils"
)

var Search = discord.SlashCommandCreate{
	Name:        "search",
	Description: "🔎 Find cards by name or series",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "query",
			Description: "Name or series text, typos welcome",
			Required:    true,
		},
	},
}

func SearchHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		query := e.SlashCommandInteractionData().String("query")

		ctx, cancel := context.WithTimeout(context.Background(), config.SearchTimeout)
		defer cancel()

		cards, err := b.SearchService.Search(ctx, query, config.MaxSearchResults)
		switch {
		case err == nil:
		case errors.Is(err, game.ErrInvalidInput):
			return utils.EH.CreateErrorEmbed(e, "Give me something to search for.")
		default:
			return utils.EH.CreateError(e, "Search failed", "Could not search the catalog.")
		}
		if len(cards) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No cards matched.")
		}

		var description strings.Builder
		for _, card := range cards {
			description.WriteString(utils.FormatCardLine(card.ID, card.Name+" — "+card.Series, card.Rarity, 1) + "\n")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🔎 Search results",
				Description: description.String(),
				Color:       config.InfoColor,
			}},
		})
	}
}
