package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/hunterdex/hunterbot/hunterbot"
	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/game"
	"github.com/hunterdex/hunterbot/hunterbot/utils"
)

var Gift = discord.SlashCommandCreate{
	Name:        "gift",
	Description: "🎁 Offer one of your cards to another player",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "id",
			Description: "Card id to give away",
			Required:    true,
		},
		discord.ApplicationCommandOptionUser{
			Name:        "to",
			Description: "Who receives the card",
			Required:    true,
		},
	},
}

func GiftHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		cardID := int64(data.Int("id"))
		receiver := data.User("to")
		chatID := e.ChannelID().String()
		sender := e.User()

		if receiver.Bot {
			return utils.EH.CreateErrorEmbed(e, "Bots can't hold cards.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		pending, err := b.GiftRepository.PendingFrom(ctx, chatID, sender.ID.String())
		if err != nil {
			return utils.EH.CreateError(e, "Gift failed", "Something went wrong, try again later.")
		}
		for _, open := range pending {
			if open.CardID == cardID {
				return utils.EH.CreateErrorEmbed(e, "You already have an open offer for that card. Settle it first.")
			}
		}

		offer, err := b.GiftManager.Propose(ctx, chatID, cardID, sender.ID.String(), receiver.ID.String())
		switch {
		case err == nil:
		case errors.Is(err, game.ErrInvalidInput):
			return utils.EH.CreateErrorEmbed(e, "You can't gift a card to yourself.")
		case errors.Is(err, game.ErrNotOwned):
			return utils.EH.CreateErrorEmbed(e, "You don't own that card in this channel.")
		default:
			return utils.EH.CreateError(e, "Gift failed", "Something went wrong, try again later.")
		}

		card, err := b.CardRepository.GetByID(ctx, cardID)
		if err != nil {
			return fmt.Errorf("offered card lookup: %w", err)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🎁 Gift offer",
				Description: fmt.Sprintf("%s offers **%s** to %s.\nOnly the sender can confirm or cancel.",
					sender.Mention(), card.Name, receiver.Mention()),
				Color: config.InfoColor,
			}},
			Components: []discord.ContainerComponent{
				discord.NewActionRow(
					discord.NewPrimaryButton("✅ Confirm", fmt.Sprintf("/gift/confirm/%d", offer.ID)),
					discord.NewDangerButton("❌ Cancel", fmt.Sprintf("/gift/cancel/%d", offer.ID)),
				),
			},
		})
	}
}

// GiftButtonHandler settles an offer from its confirm/cancel buttons. The
// custom id carries "/gift/<action>/<offerID>".
func GiftButtonHandler(b *hunterbot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		data, ok := e.Data.(discord.ButtonInteractionData)
		if !ok {
			return fmt.Errorf("invalid interaction type")
		}

		action, idPart, found := strings.Cut(strings.TrimPrefix(data.CustomID(), "/gift/"), "/")
		if !found {
			return fmt.Errorf("malformed gift button id %q", data.CustomID())
		}
		offerID, err := strconv.ParseInt(idPart, 10, 64)
		if err != nil {
			return fmt.Errorf("malformed gift offer id %q", idPart)
		}

		caller := e.User().ID.String()
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		switch action {
		case "confirm":
			offer, err := b.GiftManager.Confirm(ctx, offerID, caller)
			switch {
			case err == nil:
				return e.UpdateMessage(discord.MessageUpdate{
					Embeds: &[]discord.Embed{{
						Description: fmt.Sprintf("🎁 Gift delivered to <@%s>!", offer.ToUser),
						Color:       config.SuccessColor,
					}},
					Components: disabledGiftButtons(offerID),
				})
			case errors.Is(err, game.ErrUnauthorized):
				return utils.EH.CreateEphemeralError(e, "Only the sender can confirm this gift.")
			case errors.Is(err, game.ErrOfferResolved):
				return utils.EH.CreateEphemeralError(e, "This offer is already settled.")
			case errors.Is(err, game.ErrNoLongerOwned):
				return utils.EH.CreateEphemeralError(e, "You no longer own that card, the offer can't go through.")
			case errors.Is(err, game.ErrNotFound):
				return utils.EH.CreateEphemeralError(e, "This offer no longer exists.")
			default:
				return err
			}

		case "cancel":
			err := b.GiftManager.Cancel(ctx, offerID, caller)
			switch {
			case err == nil:
				return e.UpdateMessage(discord.MessageUpdate{
					Embeds: &[]discord.Embed{{
						Description: "Gift offer cancelled.",
						Color:       config.WarningColor,
					}},
					Components: disabledGiftButtons(offerID),
				})
			case errors.Is(err, game.ErrUnauthorized):
				return utils.EH.CreateEphemeralError(e, "Only the sender can cancel this gift.")
			case errors.Is(err, game.ErrOfferResolved):
				return utils.EH.CreateEphemeralError(e, "This offer is already settled.")
			case errors.Is(err, game.ErrNotFound):
				return utils.EH.CreateEphemeralError(e, "This offer no longer exists.")
			default:
				return err
			}

		default:
			return fmt.Errorf("unknown gift action %q", action)
		}
	}
}

func disabledGiftButtons(offerID int64) *[]discord.ContainerComponent {
	return &[]discord.ContainerComponent{
		discord.NewActionRow(
			discord.NewPrimaryButton("✅ Confirm", fmt.Sprintf("/gift/confirm/%d", offerID)).WithDisabled(true),
			discord.NewDangerButton("❌ Cancel", fmt.Sprintf("/gift/cancel/%d", offerID)).WithDisabled(true),
		),
	}
}
