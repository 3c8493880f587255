package utils

import (
	"fmt"
	"strings"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

// RarityDisplay is a tier's presentation metadata. Spawn behavior never
// reads these.
type RarityDisplay struct {
	Emoji string
	Title string
}

var rarityDisplays = map[string]RarityDisplay{
	models.RarityCommon:       {Emoji: "🔵", Title: "Common"},
	models.RarityRare:         {Emoji: "🟠", Title: "Rare"},
	models.RarityEpic:         {Emoji: "🟣", Title: "Epic"},
	models.RarityLegendary:    {Emoji: "🟡", Title: "Legendary"},
	models.RarityFlat:         {Emoji: "🔮", Title: "Flat"},
	models.RarityTranscendent: {Emoji: "🪞", Title: "Transcendent"},
	models.RarityCosmic:       {Emoji: "🌌", Title: "Cosmic"},
	models.RarityInfinity:     {Emoji: "♾️", Title: "Infinity"},
	models.RarityOblivion:     {Emoji: "🩸", Title: "Oblivion"},
}

var unknownRarity = RarityDisplay{Emoji: "❔", Title: "Unknown"}

func RarityOf(key string) RarityDisplay {
	if d, ok := rarityDisplays[key]; ok {
		return d
	}
	return unknownRarity
}

// FormatRarity renders "🌌 Cosmic" style labels.
func FormatRarity(key string) string {
	d := RarityOf(key)
	return d.Emoji + " " + d.Title
}

// eventTitles maps event keys to display titles.
var eventTitles = map[string]string{
	"post_apocalyptic_survivor": "Post-Apocalyptic Survivor ☢️",
	"space_explorer":            "Space Explorer 🚀",
	"festival_fireworks":        "Festival Fireworks 🎆",
	"monster_side":              "Monster Side 🐉",
	"rome":                      "Rome 🏰",
	"halloween":                 "Halloween 🎃",
	"valentine":                 "Valentine 💝",
	"wedding":                   "Wedding 💍",
	"school":                    "School 🏫",
	"cosplay":                   "Cosplay 🎭",
	"winter":                    "Winter ❄️",
	"christmas":                 "Christmas 🎄",
	"summer":                    "Summer 🏖",
	"gamer":                     "Gamer 🎮",
	"police":                    "Police 🚨",
	"doctor":                    "Doctor 🧬",
	"maid":                      "Maid 🧹",
	"idol":                      "Idol 🎤",
	"office_lady":               "Office Lady 💼",
	"sports":                    "Sports ⚽️",
	"warrior":                   "Warrior 🛡",
}

const noEventTitle = "None"

// EventTitle resolves an event key to its display title; unknown keys and
// the none sentinel render as "None".
func EventTitle(key string) string {
	if key == models.EventNone || key == "" {
		return noEventTitle
	}
	if title, ok := eventTitles[key]; ok {
		return title
	}
	return noEventTitle
}

// FormatCardLine is the one-line card rendering used in lists:
// "🟠 [12] | Rangiku Matsumoto x2".
func FormatCardLine(cardID int64, name, rarity string, count int) string {
	line := fmt.Sprintf("%s [%d] | %s", RarityOf(rarity).Emoji, cardID, name)
	if count > 1 {
		line += fmt.Sprintf(" x%d", count)
	}
	return line
}

// FormatCardCaption is the multi-line card description used on card posts.
func FormatCardCaption(card *models.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %d | %s (%s)\n", card.ID, card.Name, card.Series)
	fmt.Fprintf(&b, "%s | Event: %s", FormatRarity(card.Rarity), EventTitle(card.Event))
	return b.String()
}
