package admin

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

var Grant = discord.SlashCommandCreate{
	Name:                     "grant",
	Description:              "⚙️ Put copies of a card into a user's inventory",
	DefaultMemberPermissions: adminOnly,
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Receiving user",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "id",
			Description: "Card id",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "quantity",
			Description: "Copies to grant (default 1)",
			Required:    false,
			MinValue:    &[]int{1}[0],
		},
	},
}

func GrantHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := data.User("user")
		cardID := int64(data.Int("id"))
		qty := 1
		if q, ok := data.OptInt("quantity"); ok {
			qty = q
		}

		if target.Bot {
			return utils.EH.CreateErrorEmbed(e, "Bots can't hold cards.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		card, err := b.CardRepository.GetByID(ctx, cardID)
		if errors.Is(err, game.ErrNotFound) {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("No card with id %d exists.", cardID))
		}
		if err != nil {
			return utils.EH.CreateError(e, "Grant failed", "Something went wrong, try again later.")
		}

		applied, err := b.Ledger.Grant(ctx, target.ID.String(), e.ChannelID().String(), cardID, qty)
		if err != nil {
			return utils.EH.CreateError(e, "Grant failed", "Something went wrong, try again later.")
		}

		switch {
		case applied == 0:
			return utils.EH.CreateErrorEmbed(e,
				fmt.Sprintf("%s's inventory is full, nothing was granted.", target.Mention()))
		case applied < qty:
			return utils.EH.CreateSuccessEmbed(e,
				fmt.Sprintf("Granted **%d of %d** × %s to %s (inventory is now full).",
					applied, qty, card.Name, target.Mention()))
		default:
			return utils.EH.CreateSuccessEmbed(e,
				fmt.Sprintf("Granted **%d** × %s to %s.", applied, card.Name, target.Mention()))
		}
	}
}
