package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/hunterdex/hunterbot/hunterbot"
	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/database/models"
	"github.com/hunterdex/hunterbot/hunterbot/game"
	"github.com/hunterdex/hunterbot/hunterbot/utils"
)

var UploadCard = discord.SlashCommandCreate{
	Name:        "uploadcard",
	Description: "🖼️ Add a card to the catalog (uploaders only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Card name",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "series",
			Description: "Series the card belongs to",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "rarity",
			Description: "Tier key, title or emoji (e.g. cosmic, 🌌 Cosmic)",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "image",
			Description: "Image URL for the card",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "event",
			Description: "Optional event (e.g. halloween); blank for none",
			Required:    false,
		},
	},
}

func UploadCardHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		userID := e.User().ID.String()
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		allowed, err := b.CanUpload(ctx, userID)
		if err != nil {
			return utils.EH.CreateError(e, "Upload failed", "Something went wrong, try again later.")
		}
		if !allowed {
			return utils.EH.CreateErrorEmbed(e, "You are not on the uploader roster.")
		}

		data := e.SlashCommandInteractionData()
		name := strings.TrimSpace(data.String("name"))
		series := strings.TrimSpace(data.String("series"))
		if name == "" || series == "" {
			return utils.EH.CreateErrorEmbed(e, "Name and series can't be blank.")
		}

		rarity, ok := utils.ParseRarity(data.String("rarity"))
		if !ok {
			return utils.EH.CreateErrorEmbed(e, "Unknown rarity. Example: 🌌 Cosmic")
		}
		event := utils.ParseEvent(data.String("event"))

		// Hunting matches by name, so two cards sharing one would be
		// indistinguishable to players.
		existing, err := b.CardRepository.GetByName(ctx, name)
		if err != nil {
			return utils.EH.CreateError(e, "Upload failed", "Something went wrong, try again later.")
		}
		if len(existing) > 0 {
			return utils.EH.CreateErrorEmbed(e,
				fmt.Sprintf("A card named **%s** already exists (#%d).", existing[0].Name, existing[0].ID))
		}

		card := &models.Card{
			Name:       name,
			Series:     series,
			Rarity:     rarity,
			Event:      event,
			ImageRef:   data.String("image"),
			UploadedBy: userID,
			UploadedAt: time.Now(),
		}
		if err := b.CardRepository.Create(ctx, card); err != nil {
			return utils.EH.CreateError(e, "Upload failed", "Could not save the card.")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🖼️ Card added",
				Description: utils.FormatCardCaption(card),
				Color:       config.SuccessColor,
				Thumbnail:   &discord.EmbedResource{URL: card.ImageRef},
			}},
		})
	}
}

var UpdateCard = discord.SlashCommandCreate{
	Name:        "updatecard",
	Description: "🖊️ Edit a catalog card (uploaders only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "id",
			Description: "Card id",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "New name",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "series",
			Description: "New series",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "rarity",
			Description: "New rarity (key, title or emoji)",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "event",
			Description: "New event; \"none\" clears it",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "image",
			Description: "New image URL",
			Required:    false,
		},
	},
}

func UpdateCardHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		userID := e.User().ID.String()
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		allowed, err := b.CanUpload(ctx, userID)
		if err != nil {
			return utils.EH.CreateError(e, "Update failed", "Something went wrong, try again later.")
		}
		if !allowed {
			return utils.EH.CreateErrorEmbed(e, "You are not on the uploader roster.")
		}

		data := e.SlashCommandInteractionData()
		cardID := int64(data.Int("id"))

		card, err := b.CardRepository.GetByID(ctx, cardID)
		if errors.Is(err, game.ErrNotFound) {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("No card with id %d exists.", cardID))
		}
		if err != nil {
			return utils.EH.CreateError(e, "Update failed", "Something went wrong, try again later.")
		}

		changed := false
		if name, ok := data.OptString("name"); ok && strings.TrimSpace(name) != "" {
			card.Name = strings.TrimSpace(name)
			changed = true
		}
		if series, ok := data.OptString("series"); ok && strings.TrimSpace(series) != "" {
			card.Series = strings.TrimSpace(series)
			changed = true
		}
		if raw, ok := data.OptString("rarity"); ok {
			rarity, valid := utils.ParseRarity(raw)
			if !valid {
				return utils.EH.CreateErrorEmbed(e, "Unknown rarity. Example: 🌌 Cosmic")
			}
			card.Rarity = rarity
			changed = true
		}
		if raw, ok := data.OptString("event"); ok {
			card.Event = utils.ParseEvent(raw)
			changed = true
		}
		if image, ok := data.OptString("image"); ok && image != "" {
			card.ImageRef = image
			changed = true
		}
		if !changed {
			return utils.EH.CreateInfoEmbed(e, "Nothing to change.")
		}

		if err := b.CardRepository.Update(ctx, card); err != nil {
			return utils.EH.CreateError(e, "Update failed", "Could not save the card.")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🖊️ Card updated",
				Description: utils.FormatCardCaption(card),
				Color:       config.SuccessColor,
				Thumbnail:   &discord.EmbedResource{URL: card.ImageRef},
			}},
		})
	}
}

var DeleteCard = discord.SlashCommandCreate{
	Name:                     "deletecard",
	Description:              "🗑️ Permanently delete a card and every copy of it",
	DefaultMemberPermissions: adminOnly,
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "id",
			Description: "Card id to delete",
			Required:    true,
		},
		discord.ApplicationCommandOptionBool{
			Name:        "confirm",
			Description: "This cannot be undone",
			Required:    true,
		},
	},
}

func DeleteCardHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		cardID := int64(data.Int("id"))
		if !data.Bool("confirm") {
			return utils.EH.CreateErrorEmbed(e, "Set `confirm` to true to delete the card.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		card, err := b.CardRepository.GetByID(ctx, cardID)
		if errors.Is(err, game.ErrNotFound) {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("No card with id %d exists.", cardID))
		}
		if err != nil {
			return utils.EH.CreateError(e, "Delete failed", "Something went wrong, try again later.")
		}

		report, err := b.CardRepository.Delete(ctx, cardID)
		if err != nil {
			return utils.EH.CreateError(e, "Delete failed", "Could not delete the card.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Deleted **%s** (#%d): removed %d inventory copies and %d spawn slots.",
				card.Name, report.CardID, report.InventoryRemoved, report.SpawnsRemoved))
	}
}
