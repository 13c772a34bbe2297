package cards

import (
	"strings"

	"fab-catalog/feature/cards/models"

	"github.com/sahilm/fuzzy"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// SearchResult is one page of name matches.
type SearchResult struct {
	Data        []*models.Card `json:"data"`
	CurrentPage int            `json:"currentPage"`
	LastPage    int            `json:"lastPage"`
	PerPage     int            `json:"perPage"`
	Total       int            `json:"total"`
}

// cardNames holds lowercased names in load order and implements fuzzy.Source.
type cardNames []string

func (n cardNames) String(i int) string { return n[i] }
func (n cardNames) Len() int            { return len(n) }

// Search returns the cards whose name contains query, ignoring case, in dataset
// order. page is 1-based; out-of-range pages return an empty Data slice.
func (i *Index) Search(query string, page, perPage int) (*SearchResult, error) {
	snap, err := i.published()
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	matches := snap.match(strings.ToLower(strings.TrimSpace(query)))
	total := len(matches)

	result := &SearchResult{
		Data:        []*models.Card{},
		CurrentPage: page,
		LastPage:    (total + perPage - 1) / perPage,
		PerPage:     perPage,
		Total:       total,
	}

	start := (page - 1) * perPage
	if start >= total {
		return result, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}

	result.Data = make([]*models.Card, 0, end-start)
	for _, pos := range matches[start:end] {
		result.Data = append(result.Data, snap.cards[pos])
	}
	return result, nil
}

// match returns the positions of every card whose name contains q.
// The returned slice is shared through the search cache and must not be modified.
func (s *snapshot) match(q string) []int {
	if cached, ok := s.searches.Get(q); ok {
		return cached.([]int)
	}

	matches := make([]int, 0)
	for pos, name := range s.names {
		if strings.Contains(name, q) {
			matches = append(matches, pos)
		}
	}
	s.searches.Add(q, matches)
	return matches
}

// Suggest returns up to limit distinct card names that fuzzily match query,
// best match first. It backs "did you mean" hints for empty searches.
func (i *Index) Suggest(query string, limit int) ([]string, error) {
	snap, err := i.published()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return []string{}, nil
	}

	seen := make(map[string]struct{}, limit)
	out := make([]string, 0, limit)
	for _, m := range fuzzy.FindFrom(query, snap.names) {
		name := snap.cards[m.Index].Name
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
