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

var Fav = discord.SlashCommandCreate{
	Name:        "fav",
	Description: "⭐ Pick a card you own as your collection cover",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "id",
			Description: "Card id (see it in /harem)",
			Required:    true,
		},
	},
}

func FavHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		cardID := int64(e.SlashCommandInteractionData().Int("id"))
		chatID := e.ChannelID().String()
		userID := e.User().ID.String()

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		err := b.CoverSelector.SetFavorite(ctx, chatID, userID, cardID)
		switch {
		case err == nil:
		case errors.Is(err, game.ErrNotFound):
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("No card with id %d exists.", cardID))
		case errors.Is(err, game.ErrNotOwned):
			return utils.EH.CreateErrorEmbed(e, "You don't own that card in this channel.")
		default:
			return utils.EH.CreateError(e, "Favorite failed", "Something went wrong, try again later.")
		}

		card, err := b.CardRepository.GetByID(ctx, cardID)
		if err != nil {
			return utils.EH.CreateSuccessEmbed(e, "Favorite set!")
		}
		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("⭐ **%s** is now your collection cover.", card.Name))
	}
}
