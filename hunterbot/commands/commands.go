package commands

import (
	"github.com/disgoorg/disgo/discord"

	"github.com/hunterdex/hunterbot/hunterbot/commands/admin"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands,
		Hunt,
		Harem,
		Fav,
		Gift,
		Rarity,
		Check,
		Search,
	)
	Commands = append(Commands, admin.Commands...)
}
