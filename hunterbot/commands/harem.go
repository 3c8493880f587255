package commands

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/hunterdex/hunterbot/hunterbot"
	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/services"
	"github.com/hunterdex/hunterbot/hunterbot/utils"
)

var Harem = discord.SlashCommandCreate{
	Name:        "harem",
	Description: "🎴 Browse a collection, grouped by series",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Whose collection to show (defaults to yours)",
			Required:    false,
		},
	},
}

func HaremHandler(b *hunterbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		target := e.User()
		if user, ok := e.SlashCommandInteractionData().OptUser("user"); ok {
			target = user
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		view, err := b.CollectionService.View(ctx, e.ChannelID().String(), target.ID.String())
		if err != nil {
			return utils.EH.CreateError(e, "Harem failed", "Could not load the collection.")
		}
		if view.Total == 0 {
			return utils.EH.CreateInfoEmbed(e,
				fmt.Sprintf("%s has no cards in this channel yet.", target.Mention()))
		}

		totalPages := int(math.Ceil(float64(len(view.Groups)) / float64(config.SeriesPerPage)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				start := page * config.SeriesPerPage
				end := min(start+config.SeriesPerPage, len(view.Groups))

				var description strings.Builder
				for _, group := range view.Groups[start:end] {
					fmt.Fprintf(&description, "**%s**\n", group.Series)
					writeSeriesLines(&description, group)
					description.WriteString("\n")
				}

				embed.
					SetTitle(fmt.Sprintf("🎴 %s's harem", target.EffectiveName())).
					SetDescription(description.String()).
					SetColor(config.InfoColor).
					SetFooter(fmt.Sprintf("Page %d/%d • %d/%d cards", page+1, totalPages, view.Total, b.Ledger.Capacity()), "")
				if view.Cover != nil {
					embed.SetThumbnail(view.Cover.ImageRef)
				}
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

// writeSeriesLines renders one series' cards, truncated so a page of big
// series stays inside embed limits.
func writeSeriesLines(w *strings.Builder, group services.SeriesGroup) {
	shown := min(len(group.Cards), config.CardsPerSeries)
	for _, c := range group.Cards[:shown] {
		w.WriteString(utils.FormatCardLine(c.CardID, c.Name, c.Rarity, c.Count) + "\n")
	}
	if rest := len(group.Cards) - shown; rest > 0 {
		fmt.Fprintf(w, "… and %d more\n", rest)
	}
}
