package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"StockScreener/internal/domain/models"
	applogger "StockScreener/pkg/logger"
	pkgpg "StockScreener/pkg/postgres"
)

type teamRow struct {
	ID       string `gorm:"column:id;primaryKey"`
	PlanName string `gorm:"column:plan_name"`
}

func (teamRow) TableName() string { return "teams" }

// PGTeamDirectory resolves plan tiers from the teams table.
type PGTeamDirectory struct {
	db *gorm.DB
	l  *applogger.Logger
}

func NewPGTeamDirectory(pg *pkgpg.Client) *PGTeamDirectory {
	return &PGTeamDirectory{db: pg.DB()}
}

// SetLogger injects a structured logger.
func (d *PGTeamDirectory) SetLogger(l *applogger.Logger) { d.l = l }

func (d *PGTeamDirectory) PlanTier(ctx context.Context, teamID string) (models.PlanTier, error) {
	var row teamRow
	err := d.db.WithContext(ctx).
		Select("id", "plan_name").
		Where("id = ?", teamID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.ErrNotFound
		}
		if d.l != nil {
			d.l.Error("postgres team_plan error",
				applogger.String("team_id", teamID),
				applogger.Error(err),
			)
		}
		return "", fmt.Errorf("team plan: %w", err)
	}

	switch tier := models.PlanTier(strings.ToLower(strings.TrimSpace(row.PlanName))); tier {
	case models.TierBase, models.TierPlus:
		return tier, nil
	default:
		// Unknown plan names fall back to the base tier rather than failing
		// the request.
		return models.TierBase, nil
	}
}
