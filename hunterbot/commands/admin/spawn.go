package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/json"

	"github.com/hunterdex/hunterbot/hunterbot"
	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/database/models"
	"github.com/hunterdex/hunterbot/hunterbot/game"
	"github.com/hunterdex/hunterbot/hunterbot/utils"
)

var adminOnly = json.NewNullablePtr(discord.PermissionManageGuild)

var SpawnSettings = discord.SlashCommandCreate{
	Name:                     "spawnsettings",
	Description:              "⚙️ Configure card spawning in this channel",
	DefaultMemberPermissions: adminOnly,
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionBool{
			Name:        "enabled",
			Description: "Turn spawning on or off",
			Required:    false,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "interval",
			Description: "Messages between spawns (min 1)",
			Required:    false,
			MinValue:    &[]int{1}[0],
		},
	},
}

func SpawnSettingsHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		chatID := e.ChannelID().String()

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		changed := false
		if enabled, ok := data.OptBool("enabled"); ok {
			if err := b.SpawnManager.SetEnabled(ctx, chatID, enabled); err != nil {
				return utils.EH.CreateError(e, "Settings failed", "Could not update spawn settings.")
			}
			changed = true
		}
		if interval, ok := data.OptInt("interval"); ok {
			err := b.SpawnManager.SetInterval(ctx, chatID, interval)
			if errors.Is(err, game.ErrInvalidInput) {
				return utils.EH.CreateErrorEmbed(e, "Interval must be at least 1.")
			}
			if err != nil {
				return utils.EH.CreateError(e, "Settings failed", "Could not update spawn settings.")
			}
			changed = true
		}
		if !changed {
			return utils.EH.CreateInfoEmbed(e, "Nothing to change. Pass `enabled` and/or `interval`.")
		}

		status, err := b.SpawnManager.Status(ctx, chatID)
		if err != nil {
			return utils.EH.CreateSuccessEmbed(e, "Spawn settings updated.")
		}
		return utils.EH.CreateSuccessEmbed(e, formatSpawnSettings(status.Settings))
	}
}

var SpawnStatus = discord.SlashCommandCreate{
	Name:                     "spawnstatus",
	Description:              "⚙️ Show spawn settings and the current slot",
	DefaultMemberPermissions: adminOnly,
}

func SpawnStatusHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		status, err := b.SpawnManager.Status(ctx, e.ChannelID().String())
		if err != nil {
			return utils.EH.CreateError(e, "Status failed", "Could not load spawn status.")
		}

		description := formatSpawnSettings(status.Settings) + "\n"
		switch {
		case status.Slot == nil:
			description += "Slot: empty"
		case status.Slot.Claimed():
			description += fmt.Sprintf("Slot: claimed by <@%s>", status.Slot.ClaimedBy)
		default:
			description += "Slot: a card is waiting to be hunted"
		}

		return utils.EH.CreateInfoEmbed(e, description)
	}
}

func formatSpawnSettings(s *models.ChatSettings) string {
	state := "disabled"
	if s.SpawnEnabled {
		state = "enabled"
	}
	return fmt.Sprintf("Spawning **%s**, every **%d** messages (counter at %d).",
		state, s.SpawnEvery, s.MsgCounter)
}

var ForceSpawn = discord.SlashCommandCreate{
	Name:                     "forcespawn",
	Description:              "⚙️ Spawn a card right now",
	DefaultMemberPermissions: adminOnly,
}

func ForceSpawnHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		channelID := e.ChannelID()
		card, err := b.SpawnManager.Trigger(ctx, channelID.String(), func(card *models.Card) (string, error) {
			msg, err := e.Client().Rest().CreateMessage(channelID, discord.MessageCreate{
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
		case errors.Is(err, game.ErrSpawnBlocked):
			return utils.EH.CreateErrorEmbed(e, "An unclaimed card is already out. Clear it first with /clearspawn.")
		case errors.Is(err, game.ErrNoCardsAvailable):
			return utils.EH.CreateErrorEmbed(e, "The catalog is empty, upload cards first.")
		default:
			return utils.EH.CreateError(e, "Spawn failed", "Something went wrong, try again later.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Spawned card #%d.", card.ID))
	}
}

var ClearSpawn = discord.SlashCommandCreate{
	Name:                     "clearspawn",
	Description:              "⚙️ Remove the current spawn slot, claimed or not",
	DefaultMemberPermissions: adminOnly,
}

func ClearSpawnHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		if err := b.SpawnManager.ForceClear(ctx, e.ChannelID().String()); err != nil {
			return utils.EH.CreateError(e, "Clear failed", "Could not clear the spawn slot.")
		}
		return utils.EH.CreateSuccessEmbed(e, "Spawn slot cleared.")
	}
}
