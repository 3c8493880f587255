package admin

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/hunterdex/hunterbot/hunterbot"
	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/utils"
)

var ResetUser = discord.SlashCommandCreate{
	Name:                     "resetuser",
	Description:              "⚙️ Wipe a user's entire inventory, everywhere",
	DefaultMemberPermissions: adminOnly,
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "User to reset",
			Required:    true,
		},
		discord.ApplicationCommandOptionBool{
			Name:        "confirm",
			Description: "This cannot be undone",
			Required:    true,
		},
	},
}

func ResetUserHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := data.User("user")
		if !data.Bool("confirm") {
			return utils.EH.CreateErrorEmbed(e, "Set `confirm` to true to wipe the inventory.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		removed, err := b.Ledger.Reset(ctx, target.ID.String())
		if err != nil {
			return utils.EH.CreateError(e, "Reset failed", "Something went wrong, try again later.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Removed **%d** cards from %s.", removed, target.Mention()))
	}
}
