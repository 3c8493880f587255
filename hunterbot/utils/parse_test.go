package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

func TestParseRarity(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{name: "bare key", in: "cosmic", want: models.RarityCosmic, wantOK: true},
		{name: "key uppercase", in: "LEGENDARY", want: models.RarityLegendary, wantOK: true},
		{name: "title", in: "Transcendent", want: models.RarityTranscendent, wantOK: true},
		{name: "emoji", in: "🌌", want: models.RarityCosmic, wantOK: true},
		{name: "emoji plus title", in: "🌌 Cosmic", want: models.RarityCosmic, wantOK: true},
		{name: "colon noise", in: "rarity: epic", want: models.RarityEpic, wantOK: true},
		{name: "garbage", in: "mythic", wantOK: false},
		{name: "empty", in: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRarity(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "blank", in: "", want: models.EventNone},
		{name: "none word", in: "none", want: models.EventNone},
		{name: "no event", in: "no event", want: models.EventNone},
		{name: "dash", in: "-", want: models.EventNone},
		{name: "key", in: "halloween", want: "halloween"},
		{name: "key uppercase", in: "CHRISTMAS", want: "christmas"},
		{name: "event prefix stripped", in: "event: winter", want: "winter"},
		{name: "unknown falls back to none", in: "apocalypse", want: models.EventNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEvent(tt.in))
		})
	}
}

func TestFormatCardLine(t *testing.T) {
	assert.Equal(t, "🟠 [12] | Rangiku Matsumoto", FormatCardLine(12, "Rangiku Matsumoto", models.RarityRare, 1))
	assert.Equal(t, "🟠 [12] | Rangiku Matsumoto x2", FormatCardLine(12, "Rangiku Matsumoto", models.RarityRare, 2))
}

func TestEventTitle(t *testing.T) {
	assert.Equal(t, "None", EventTitle(models.EventNone))
	assert.Equal(t, "None", EventTitle(""))
	assert.Equal(t, "Halloween 🎃", EventTitle("halloween"))
	assert.Equal(t, "None", EventTitle("bogus"))
}
