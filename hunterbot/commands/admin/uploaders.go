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

var AddUploader = discord.SlashCommandCreate{
	Name:        "adduploader",
	Description: "⚙️ Allow a user to manage the card catalog (owner only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "User to add to the roster",
			Required:    true,
		},
	},
}

func AddUploaderHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsOwner(e.User().ID.String()) {
			return utils.EH.CreateErrorEmbed(e, "Only the bot owner manages the uploader roster.")
		}

		target := e.SlashCommandInteractionData().User("user")
		if target.Bot {
			return utils.EH.CreateErrorEmbed(e, "Bots can't be uploaders.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		if err := b.UploaderRepository.Add(ctx, target.ID.String(), e.User().ID.String()); err != nil {
			return utils.EH.CreateError(e, "Roster update failed", "Could not add the uploader.")
		}

		roster, err := b.UploaderRepository.List(ctx)
		if err != nil {
			return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("%s can now upload cards.", target.Mention()))
		}
		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("%s can now upload cards. Roster size: %d.", target.Mention(), len(roster)))
	}
}

var RemoveUploader = discord.SlashCommandCreate{
	Name:        "removeuploader",
	Description: "⚙️ Remove a user from the uploader roster (owner only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "User to remove from the roster",
			Required:    true,
		},
	},
}

func RemoveUploaderHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsOwner(e.User().ID.String()) {
			return utils.EH.CreateErrorEmbed(e, "Only the bot owner manages the uploader roster.")
		}

		target := e.SlashCommandInteractionData().User("user")

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		removed, err := b.UploaderRepository.Remove(ctx, target.ID.String())
		if err != nil {
			return utils.EH.CreateError(e, "Roster update failed", "Could not remove the uploader.")
		}
		if !removed {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("%s was not on the roster.", target.Mention()))
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("%s can no longer upload cards.", target.Mention()))
	}
}
