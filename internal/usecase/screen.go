package usecase

import (
	"context"
	"time"

	"StockScreener/internal/domain/models"
	"StockScreener/internal/domain/repository"
	"StockScreener/internal/screener"
	applogger "StockScreener/pkg/logger"
)

// ScreenResult is the outcome of one screening pass.
type ScreenResult struct {
	Filter  models.FilterDefinition `json:"filter"`
	Matches []models.Snapshot       `json:"matches"`
	Total   int                     `json:"total"`
}

// ScreenService runs the read path: resolve the effective filter for a team,
// load the latest snapshot universe and reduce it. The reduction itself is
// pure; this service only wires stores and metrics around it.
type ScreenService struct {
	snapshots repository.SnapshotStore
	filters   repository.FilterStore
	metrics   repository.Metrics
	logger    *applogger.Logger
}

func NewScreenService(
	snapshots repository.SnapshotStore,
	filters repository.FilterStore,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *ScreenService {
	return &ScreenService{
		snapshots: snapshots,
		filters:   filters,
		metrics:   metrics,
		logger:    logger,
	}
}

// Screen applies the team's effective filter over the most recent snapshot
// set. When filterID is given it must name one of the team's live
// definitions (ErrNotFound otherwise); when empty, the initial-selection
// rule applies: team default, else earliest created, else match-everything.
func (s *ScreenService) Screen(ctx context.Context, teamID, filterID string) (ScreenResult, error) {
	defs, err := s.filters.ListByTeam(ctx, teamID)
	if err != nil {
		s.logger.Error("list filters failed", applogger.Error(err))
		s.metrics.RecordError("store")
		return ScreenResult{}, &models.StoreError{Op: "list_filters", Err: err}
	}

	var filter models.FilterDefinition
	if filterID != "" {
		found := false
		for _, d := range defs {
			if d.ID == filterID {
				filter = d
				found = true
				break
			}
		}
		if !found {
			return ScreenResult{}, models.ErrNotFound
		}
	} else {
		filter = InitialSelection(defs)
	}

	snaps, err := s.snapshots.Latest(ctx)
	if err != nil {
		s.logger.Error("load snapshots failed", applogger.Error(err))
		s.metrics.RecordError("store")
		return ScreenResult{}, &models.StoreError{Op: "load_snapshots", Err: err}
	}

	start := time.Now()
	matches := screener.Apply(snaps, filter)
	s.metrics.RecordScreen(len(matches), len(snaps), time.Since(start).Seconds())

	return ScreenResult{Filter: filter, Matches: matches, Total: len(snaps)}, nil
}
