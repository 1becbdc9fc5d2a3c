package repository

import (
	"context"

	"StockScreener/internal/domain/models"
)

// FilterStore persists FilterDefinition rows keyed by team. Implementations
// must make SetDefault a single transaction: clear every other live default
// for the team and set the named one, so two concurrent calls can never
// leave a team with zero or two defaults. Not-found conditions (unknown id,
// already deleted, wrong team) surface as models.ErrNotFound.
type FilterStore interface {
	Insert(ctx context.Context, def *models.FilterDefinition) error
	ListByTeam(ctx context.Context, teamID string) ([]models.FilterDefinition, error)
	CountByTeam(ctx context.Context, teamID string) (int64, error)
	SoftDelete(ctx context.Context, id, teamID string) error
	SetDefault(ctx context.Context, id, teamID string) error
}

// TeamDirectory resolves a team's current plan tier. Membership and
// authentication are handled upstream; a (user, team) pair reaching this
// layer is trusted.
type TeamDirectory interface {
	PlanTier(ctx context.Context, teamID string) (models.PlanTier, error)
}

// SnapshotStore yields the enriched snapshot set for the most recent trading
// date, deduplicated to one row per ticker.
type SnapshotStore interface {
	Latest(ctx context.Context) ([]models.Snapshot, error)
}

// ActivitySink receives audit entries. Callers treat it as fire-and-forget;
// an error is logged by the caller and never propagated.
type ActivitySink interface {
	Record(ctx context.Context, entry models.ActivityEntry) error
}

// Metrics records operational counters for the screener.
type Metrics interface {
	RecordScreen(matched, total int, seconds float64)
	RecordStoreOp(op string, seconds float64)
	RecordActivity(action string)
	RecordError(kind string)
}
