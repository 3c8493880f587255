package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/hunterdex/hunterbot/hunterbot"
	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/utils"
)

var Rarity = discord.SlashCommandCreate{
	Name:        "rarity",
	Description: "📊 Your per-tier collection progress across all channels",
}

func RarityHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StatsQueryTimeout)
		defer cancel()

		progress, err := b.StatsService.RarityProgress(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.CreateError(e, "Rarity failed", "Could not load rarity progress.")
		}

		total, err := b.CardRepository.Count(ctx)
		if err != nil {
			return utils.EH.CreateError(e, "Rarity failed", "Could not load rarity progress.")
		}

		var description strings.Builder
		for _, p := range progress {
			if p.Total == 0 {
				continue
			}
			pct := float64(p.Owned) / float64(p.Total) * 100
			fmt.Fprintf(&description, "%s (%d/%d) — %.0f%%\n",
				utils.FormatRarity(p.Rarity), p.Owned, p.Total, pct)
		}
		if description.Len() == 0 {
			return utils.EH.CreateInfoEmbed(e, "The catalog is empty.")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "📊 Rarity progress",
				Description: description.String(),
				Color:       config.InfoColor,
				Footer:      &discord.EmbedFooter{Text: fmt.Sprintf("Catalog: %d cards", total)},
			}},
		})
	}
}
