package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Sakura Haruno", want: "sakura haruno"},
		{name: "trims edges", in: "  mikasa  ", want: "mikasa"},
		{name: "collapses inner whitespace", in: "edward \t  elric", want: "edward elric"},
		{name: "folds arabic yeh", in: "علي", want: "علی"},
		{name: "folds arabic kaf", in: "كريم", want: "کریم"},
		{name: "empty stays empty", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNameMatches(t *testing.T) {
	tests := []struct {
		name     string
		guess    string
		cardName string
		want     bool
	}{
		{name: "exact", guess: "Rem", cardName: "Rem", want: true},
		{name: "case and spacing folded", guess: "  ROY   mustang ", cardName: "Roy Mustang", want: true},
		{name: "arabic variants equivalent", guess: "علي", cardName: "علی", want: true},
		{name: "substring is not a match", guess: "Roy", cardName: "Roy Mustang", want: false},
		{name: "single rune never matches", guess: "r", cardName: "R", want: false},
		{name: "two runes are enough", guess: "ed", cardName: "Ed", want: true},
		{name: "whitespace-only guess", guess: "   ", cardName: "Rem", want: false},
		{name: "wrong name", guess: "emilia", cardName: "Rem", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NameMatches(tt.guess, tt.cardName))
		})
	}
}
