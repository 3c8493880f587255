package game

import (
	"strings"
	"unicode/utf8"
)

// NormalizeName prepares a card name or guess for comparison: lowercase,
// trimmed, runs of whitespace collapsed to single spaces, and the Arabic
// yeh/kaf variants folded to their Farsi look-alikes so either spelling
// matches the stored name.
func NormalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "ي", "ی") // ي -> ی
	s = strings.ReplaceAll(s, "ك", "ک") // ك -> ک
	return strings.Join(strings.Fields(s), " ")
}

// NameMatches reports whether guess names the card. Equality is exact
// after normalization; guesses shorter than two normalized runes never
// match so single letters cannot snipe a spawn.
func NameMatches(guess, cardName string) bool {
	g := NormalizeName(guess)
	if utf8.RuneCountInString(g) < 2 {
		return false
	}
	return g == NormalizeName(cardName)
}
