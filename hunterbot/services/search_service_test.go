package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunterdex/hunterbot/hunterbot/database/models"
	"github.com/hunterdex/hunterbot/hunterbot/game"
)

type staticCatalog []*models.Card

func (c staticCatalog) GetAll(context.Context) ([]*models.Card, error) {
	return c, nil
}

var searchCards = staticCatalog{
	{ID: 1, Name: "Rangiku Matsumoto", Series: "Bleach", Rarity: models.RarityRare},
	{ID: 2, Name: "Rukia Kuchiki", Series: "Bleach", Rarity: models.RarityEpic},
	{ID: 3, Name: "Edward Elric", Series: "Fullmetal Alchemist", Rarity: models.RarityCommon},
	{ID: 4, Name: "Alphonse Elric", Series: "Fullmetal Alchemist", Rarity: models.RarityCommon},
	{ID: 5, Name: "Rem", Series: "Re:Zero", Rarity: models.RarityLegendary},
}

func TestSearch_SubstringOnName(t *testing.T) {
	s := NewSearchService(searchCards)

	got, err := s.Search(context.Background(), "rangiku", 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestSearch_SubstringOnSeries(t *testing.T) {
	s := NewSearchService(searchCards)

	got, err := s.Search(context.Background(), "bleach", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Exact hits come back name-sorted.
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestSearch_FuzzyFallback(t *testing.T) {
	s := NewSearchService(searchCards)

	got, err := s.Search(context.Background(), "rangik", 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, int64(1), got[0].ID, "typo still finds Rangiku")
}

func TestSearch_LimitApplies(t *testing.T) {
	s := NewSearchService(searchCards)

	got, err := s.Search(context.Background(), "elric", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearch_EmptyQuery(t *testing.T) {
	s := NewSearchService(searchCards)

	_, err := s.Search(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, game.ErrInvalidInput)
}

func TestSearch_NoMatches(t *testing.T) {
	s := NewSearchService(searchCards)

	got, err := s.Search(context.Background(), "zzzzqqq", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
