package services

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/database/models"
	"github.com/hunterdex/hunterbot/hunterbot/game"
)

// Catalog is the slice of the card repository the search needs.
type Catalog interface {
	GetAll(ctx context.Context) ([]*models.Card, error)
}

// SearchService finds catalog cards by name or series. Exact substring
// hits rank above fuzzy matches; fuzzy fills the remainder so typos like
// "rangik" still land.
type SearchService struct {
	cards Catalog
}

func NewSearchService(cards Catalog) *SearchService {
	return &SearchService{cards: cards}
}

type searchCorpus []*models.Card

func (c searchCorpus) String(i int) string {
	return c[i].Name + " " + c[i].Series
}

func (c searchCorpus) Len() int { return len(c) }

func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]*models.Card, error) {
	query = game.NormalizeName(query)
	if query == "" {
		return nil, game.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, config.SearchTimeout)
	defer cancel()

	all, err := s.cards.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var exact []*models.Card
	seen := make(map[int64]bool)
	for _, card := range all {
		hay := strings.ToLower(card.Name + " " + card.Series)
		if strings.Contains(hay, query) {
			exact = append(exact, card)
			seen[card.ID] = true
		}
	}
	sort.Slice(exact, func(i, j int) bool {
		return strings.ToLower(exact[i].Name) < strings.ToLower(exact[j].Name)
	})

	results := exact
	if len(results) < limit {
		for _, match := range fuzzy.FindFrom(query, searchCorpus(all)) {
			card := all[match.Index]
			if seen[card.ID] {
				continue
			}
			results = append(results, card)
			if len(results) >= limit {
				break
			}
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
