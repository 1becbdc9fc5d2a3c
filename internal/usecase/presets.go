package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"StockScreener/internal/domain/models"
	"StockScreener/internal/domain/repository"
	applogger "StockScreener/pkg/logger"
)

// PresetService orchestrates the filter preset lifecycle: create under the
// team's plan quota, soft delete, and the exclusive default transition. All
// expected failures come back as typed values (ValidationError, Quota-
// ExceededError, ErrNotFound); everything else is wrapped in StoreError and
// logged here with full detail. Nothing is retried: a failed mutation is the
// caller's to re-issue.
type PresetService struct {
	store    repository.FilterStore
	teams    repository.TeamDirectory
	activity repository.ActivitySink
	metrics  repository.Metrics
	logger   *applogger.Logger
}

func NewPresetService(
	store repository.FilterStore,
	teams repository.TeamDirectory,
	activity repository.ActivitySink,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *PresetService {
	return &PresetService{
		store:    store,
		teams:    teams,
		activity: activity,
		metrics:  metrics,
		logger:   logger,
	}
}

// Create validates the draft, enforces the team's saved-filter quota and
// inserts a new definition owned by the user. Saving never mutates an
// existing row; re-saving an edited preset creates a fresh one. Returns the
// new definition's id.
func (s *PresetService) Create(ctx context.Context, draft models.FilterDraft, userID, teamID string) (string, error) {
	def, err := draft.Parse()
	if err != nil {
		return "", err
	}

	tier, err := s.teams.PlanTier(ctx, teamID)
	if err != nil {
		return "", s.storeFailure("plan_tier", err)
	}

	count, err := s.store.CountByTeam(ctx, teamID)
	if err != nil {
		return "", s.storeFailure("count_filters", err)
	}

	limit := tier.SavedFilterLimit()
	if count >= int64(limit) {
		return "", &models.QuotaExceededError{Tier: tier, Limit: limit}
	}

	def.ID = uuid.NewString()
	def.UserID = userID
	def.TeamID = teamID
	def.CreatedAt = time.Now().UTC()

	start := time.Now()
	if err := s.store.Insert(ctx, &def); err != nil {
		return "", s.storeFailure("insert_filter", err)
	}
	s.metrics.RecordStoreOp("insert_filter", time.Since(start).Seconds())

	s.recordActivity(ctx, teamID, userID, models.ActivityAddFilter)
	return def.ID, nil
}

// Delete soft-deletes the definition. Other definitions' default flags are
// untouched; deleting the current default leaves the team with none until
// the next SetDefault. Unknown, foreign, and already-deleted ids all come
// back as ErrNotFound.
func (s *PresetService) Delete(ctx context.Context, id, userID, teamID string) error {
	start := time.Now()
	err := s.store.SoftDelete(ctx, id, teamID)
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrNotFound
	}
	if err != nil {
		return s.storeFailure("delete_filter", err)
	}
	s.metrics.RecordStoreOp("delete_filter", time.Since(start).Seconds())

	s.recordActivity(ctx, teamID, userID, models.ActivityDeleteFilter)
	return nil
}

// SetDefault makes id the team's only default definition. The store performs
// the clear-and-set as one transaction, so the exactly-one-default invariant
// holds even under concurrent calls for the same team.
func (s *PresetService) SetDefault(ctx context.Context, id, teamID string) error {
	start := time.Now()
	err := s.store.SetDefault(ctx, id, teamID)
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrNotFound
	}
	if err != nil {
		return s.storeFailure("set_default_filter", err)
	}
	s.metrics.RecordStoreOp("set_default_filter", time.Since(start).Seconds())
	return nil
}

// List returns the team's live definitions, earliest created first.
func (s *PresetService) List(ctx context.Context, teamID string) ([]models.FilterDefinition, error) {
	defs, err := s.store.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, s.storeFailure("list_filters", err)
	}
	return defs, nil
}

func (s *PresetService) storeFailure(op string, err error) error {
	s.logger.Error("store operation failed",
		applogger.String("op", op),
		applogger.Error(err),
	)
	s.metrics.RecordError("store")
	return &models.StoreError{Op: op, Err: err}
}

// recordActivity is fire-and-forget: sink failures are logged and swallowed
// so audit trouble never fails the operation that triggered it.
func (s *PresetService) recordActivity(ctx context.Context, teamID, userID string, action models.ActivityType) {
	entry := models.ActivityEntry{
		TeamID:    teamID,
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	if err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn("activity record failed",
			applogger.String("action", string(action)),
			applogger.Error(err),
		)
		s.metrics.RecordError("activity")
		return
	}
	s.metrics.RecordActivity(string(action))
}
