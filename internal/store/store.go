// Package store provides the in-memory fighter record store.
package store

import (
	"sort"

	"github.com/yourusername/fight-predictor/internal/models"
)

// RecordStore is an immutable, corner-indexed view over the historical fight rows.
// It is safe for concurrent use once constructed.
type RecordStore struct {
	rows  []models.FightRow
	red   map[string]int
	blue  map[string]int
	names []string
}

// New indexes rows by normalized name per corner. When a name appears in several
// rows of a corner, the first row in source order wins.
func New(rows []models.FightRow) *RecordStore {
	s := &RecordStore{
		rows: append([]models.FightRow(nil), rows...),
		red:  make(map[string]int),
		blue: make(map[string]int),
	}

	seen := make(map[string]struct{})
	for i, row := range s.rows {
		if row.RedName != "" {
			if _, ok := s.red[row.RedName]; !ok {
				s.red[row.RedName] = i
			}
			seen[row.RedName] = struct{}{}
		}
		if row.BlueName != "" {
			if _, ok := s.blue[row.BlueName]; !ok {
				s.blue[row.BlueName] = i
			}
			seen[row.BlueName] = struct{}{}
		}
	}

	s.names = make([]string, 0, len(seen))
	for name := range seen {
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)

	return s
}

// Resolve returns the statistics of the first row where name fought in corner.
// name must already be normalized.
func (s *RecordStore) Resolve(name string, corner models.Corner) (models.FighterStats, error) {
	var index map[string]int
	switch corner {
	case models.CornerRed:
		index = s.red
	case models.CornerBlue:
		index = s.blue
	default:
		return models.FighterStats{}, &models.InvalidInputError{Field: "corner", Reason: "must be red or blue"}
	}

	i, ok := index[name]
	if !ok {
		return models.FighterStats{}, &models.FighterNotFoundError{Side: corner, Name: name}
	}
	return s.rows[i].Stats(corner), nil
}

// Fighters returns every known fighter name from either corner, sorted and deduplicated.
func (s *RecordStore) Fighters() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of indexed rows
func (s *RecordStore) Len() int {
	return len(s.rows)
}
