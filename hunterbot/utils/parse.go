package utils

import (
	"strings"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
	"github.com/hunterdex/hunterbot/hunterbot/game"
)

// ParseRarity resolves admin input to a tier key. Accepts the key itself,
// the display title, or the tier emoji, in any casing. Returns ok=false
// for anything unrecognized.
func ParseRarity(input string) (string, bool) {
	raw := strings.TrimSpace(input)
	norm := game.NormalizeName(strings.ReplaceAll(raw, ":", " "))
	if norm == "" {
		return "", false
	}

	if models.ValidRarity(norm) {
		return norm, true
	}
	for _, tier := range models.RarityTiers {
		d := RarityOf(tier)
		if strings.Contains(norm, tier) {
			return tier, true
		}
		if strings.Contains(norm, game.NormalizeName(d.Title)) {
			return tier, true
		}
		if d.Emoji != "" && strings.Contains(raw, d.Emoji) {
			return tier, true
		}
	}
	return "", false
}

// ParseEvent resolves optional admin input to an event key. Blank input
// and the no-event spellings ("none", "no event", "null", "-") map to the
// none sentinel; unrecognized text does too, matching the forgiving
// behavior admins expect from optional fields.
func ParseEvent(input string) string {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return models.EventNone
	}

	norm := game.NormalizeName(strings.NewReplacer("event", "", ":", " ").Replace(strings.ToLower(raw)))
	switch norm {
	case models.EventNone, "noevent", "no event", "null", "-":
		return models.EventNone
	}

	if _, ok := eventTitles[norm]; ok {
		return norm
	}
	for key, title := range eventTitles {
		if strings.Contains(game.NormalizeName(raw), game.NormalizeName(title)) {
			return key
		}
		if strings.Contains(norm, key) {
			return key
		}
	}
	return models.EventNone
}
