package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/hunterdex/hunterbot/hunterbot"
	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/game"
	"github.com/hunterdex/hunterbot/hunterbot/utils"
)

var Hunt = discord.SlashCommandCreate{
	Name:        "hunt",
	Description: "🎯 Guess the spawned card's name to claim it!",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Your guess at the card's name",
			Required:    true,
		},
	},
}

func HuntHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guess := e.SlashCommandInteractionData().String("name")
		chatID := e.ChannelID().String()
		userID := e.User().ID.String()

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		result, err := b.ClaimEngine.AttemptClaim(ctx, chatID, userID, guess)
		switch {
		case err == nil:
		case errors.Is(err, game.ErrNoActiveSpawn):
			return utils.EH.CreateErrorEmbed(e, "There is no card to hunt right now.")
		case errors.Is(err, game.ErrAlreadyClaimed):
			return utils.EH.CreateErrorEmbed(e, "Too late, this card was already claimed!")
		case errors.Is(err, game.ErrWrongGuess):
			return utils.EH.CreateErrorEmbed(e, "Wrong name, try again!")
		case errors.Is(err, game.ErrCapacityFull):
			return utils.EH.CreateErrorEmbed(e,
				fmt.Sprintf("Your inventory is full (%d cards). Gift some away to make room.", b.Ledger.Capacity()))
		default:
			return utils.EH.CreateError(e, "Hunt failed", "Something went wrong, try again later.")
		}

		card := result.Card
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🏆 Card claimed!",
				Description: fmt.Sprintf("%s caught **%s**!\n%s",
					e.User().Mention(), card.Name, utils.FormatCardCaption(card)),
				Color: config.SuccessColor,
				Image: &discord.EmbedResource{URL: card.ImageRef},
			}},
		})
	}
}
