package usecase

import (
	"sync"

	"StockScreener/internal/domain/models"
)

// Selection tracks a caller's currently applied filter. Selecting is a pure
// state transition on the client's side of the API: it never touches the
// store and carries no persistence.
type Selection struct {
	mu      sync.Mutex
	current models.FilterDefinition
	chosen  bool
}

// Select swaps the current filter.
func (s *Selection) Select(def models.FilterDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = def
	s.chosen = true
}

// Current returns the selected filter and whether one has been selected.
func (s *Selection) Current() (models.FilterDefinition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.chosen
}

// Reset clears the selection back to the initial state.
func (s *Selection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = models.FilterDefinition{}
	s.chosen = false
}

// InitialSelection picks the filter a team starts with: the default
// definition when one exists, else the earliest created, else an empty
// definition that matches everything.
func InitialSelection(defs []models.FilterDefinition) models.FilterDefinition {
	var earliest *models.FilterDefinition
	for i := range defs {
		if defs[i].IsDefault {
			return defs[i]
		}
		if earliest == nil || defs[i].CreatedAt.Before(earliest.CreatedAt) {
			earliest = &defs[i]
		}
	}
	if earliest != nil {
		return *earliest
	}
	return models.FilterDefinition{}
}
