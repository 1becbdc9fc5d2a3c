package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"StockScreener/internal/domain/models"
	pkgpg "StockScreener/pkg/postgres"
)

type activityRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	TeamID    string    `gorm:"column:team_id"`
	UserID    string    `gorm:"column:user_id"`
	Action    string    `gorm:"column:action"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (activityRow) TableName() string { return "activity_logs" }

// PGActivitySink appends audit entries to the activity_logs table.
type PGActivitySink struct {
	db *gorm.DB
}

func NewPGActivitySink(pg *pkgpg.Client) *PGActivitySink {
	return &PGActivitySink{db: pg.DB()}
}

func (s *PGActivitySink) Record(ctx context.Context, entry models.ActivityEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	row := activityRow{
		ID:        uuid.NewString(),
		TeamID:    entry.TeamID,
		UserID:    entry.UserID,
		Action:    string(entry.Action),
		CreatedAt: ts,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}
