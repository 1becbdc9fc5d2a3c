package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"StockScreener/internal/domain/models"
	applogger "StockScreener/pkg/logger"
	pkgpg "StockScreener/pkg/postgres"
)

// filterRow mirrors the filters table. Thresholds are decimal(5,2) columns
// and min_volume a bigint; NULL means the bound is not set.
type filterRow struct {
	ID         string `gorm:"column:id;primaryKey"`
	TeamID     string `gorm:"column:team_id"`
	UserID     string `gorm:"column:user_id"`
	FilterName string `gorm:"column:filter_name"`

	MinVolume  *int64           `gorm:"column:min_volume"`
	MaxRSI4    *decimal.Decimal `gorm:"column:max_rsi4;type:decimal(5,2)"`
	MaxRSI14   *decimal.Decimal `gorm:"column:max_rsi14;type:decimal(5,2)"`
	MinIV      *decimal.Decimal `gorm:"column:min_iv;type:decimal(5,2)"`
	MaxIV      *decimal.Decimal `gorm:"column:max_iv;type:decimal(5,2)"`
	MinWillr4  *decimal.Decimal `gorm:"column:min_willr4;type:decimal(5,2)"`
	MaxWillr4  *decimal.Decimal `gorm:"column:max_willr4;type:decimal(5,2)"`
	MinWillr14 *decimal.Decimal `gorm:"column:min_willr14;type:decimal(5,2)"`
	MaxWillr14 *decimal.Decimal `gorm:"column:max_willr14;type:decimal(5,2)"`
	MinStochK  *decimal.Decimal `gorm:"column:min_stochastics_k;type:decimal(5,2)"`
	MaxStochK  *decimal.Decimal `gorm:"column:max_stochastics_k;type:decimal(5,2)"`

	MACDIncreasing      bool `gorm:"column:macd_increasing"`
	MACDLineAboveSignal bool `gorm:"column:macd_line_above_signal"`
	CloseAboveEMAStack  bool `gorm:"column:close_above_ema20_above_ema50"`
	StochKAboveD        bool `gorm:"column:stochastics_k_above_d"`

	IsDefault bool       `gorm:"column:is_default"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
}

func (filterRow) TableName() string { return "filters" }

func (r filterRow) toModel() models.FilterDefinition {
	return models.FilterDefinition{
		ID:     r.ID,
		TeamID: r.TeamID,
		UserID: r.UserID,
		Name:   r.FilterName,
		Bounds: models.Bounds{
			MinVolume:  r.MinVolume,
			MaxRSI4:    r.MaxRSI4,
			MaxRSI14:   r.MaxRSI14,
			MinIV:      r.MinIV,
			MaxIV:      r.MaxIV,
			MinWillr4:  r.MinWillr4,
			MaxWillr4:  r.MaxWillr4,
			MinWillr14: r.MinWillr14,
			MaxWillr14: r.MaxWillr14,
			MinStochK:  r.MinStochK,
			MaxStochK:  r.MaxStochK,
		},
		Flags: models.ConfirmationFlags{
			MACDIncreasing:      r.MACDIncreasing,
			MACDLineAboveSignal: r.MACDLineAboveSignal,
			CloseAboveEMAStack:  r.CloseAboveEMAStack,
			StochKAboveD:        r.StochKAboveD,
		},
		IsDefault: r.IsDefault,
		CreatedAt: r.CreatedAt,
		DeletedAt: r.DeletedAt,
	}
}

func rowFromModel(def *models.FilterDefinition) filterRow {
	return filterRow{
		ID:         def.ID,
		TeamID:     def.TeamID,
		UserID:     def.UserID,
		FilterName: def.Name,

		MinVolume:  def.Bounds.MinVolume,
		MaxRSI4:    def.Bounds.MaxRSI4,
		MaxRSI14:   def.Bounds.MaxRSI14,
		MinIV:      def.Bounds.MinIV,
		MaxIV:      def.Bounds.MaxIV,
		MinWillr4:  def.Bounds.MinWillr4,
		MaxWillr4:  def.Bounds.MaxWillr4,
		MinWillr14: def.Bounds.MinWillr14,
		MaxWillr14: def.Bounds.MaxWillr14,
		MinStochK:  def.Bounds.MinStochK,
		MaxStochK:  def.Bounds.MaxStochK,

		MACDIncreasing:      def.Flags.MACDIncreasing,
		MACDLineAboveSignal: def.Flags.MACDLineAboveSignal,
		CloseAboveEMAStack:  def.Flags.CloseAboveEMAStack,
		StochKAboveD:        def.Flags.StochKAboveD,

		IsDefault: def.IsDefault,
		CreatedAt: def.CreatedAt,
		DeletedAt: def.DeletedAt,
	}
}

// PGFilterStore implements FilterStore backed by PostgreSQL.
type PGFilterStore struct {
	db *gorm.DB
	l  *applogger.Logger
}

func NewPGFilterStore(pg *pkgpg.Client) *PGFilterStore {
	return &PGFilterStore{db: pg.DB()}
}

// SetLogger injects a structured logger.
func (s *PGFilterStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *PGFilterStore) Insert(ctx context.Context, def *models.FilterDefinition) error {
	row := rowFromModel(def)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if s.l != nil {
			s.l.Error("postgres insert_filter error",
				applogger.String("team_id", def.TeamID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("insert filter: %w", err)
	}
	return nil
}

func (s *PGFilterStore) ListByTeam(ctx context.Context, teamID string) ([]models.FilterDefinition, error) {
	var rows []filterRow
	err := s.db.WithContext(ctx).
		Where("team_id = ? AND deleted_at IS NULL", teamID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		if s.l != nil {
			s.l.Error("postgres list_filters error",
				applogger.String("team_id", teamID),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("list filters: %w", err)
	}
	out := make([]models.FilterDefinition, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *PGFilterStore) CountByTeam(ctx context.Context, teamID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&filterRow{}).
		Where("team_id = ? AND deleted_at IS NULL", teamID).
		Count(&n).Error
	if err != nil {
		if s.l != nil {
			s.l.Error("postgres count_filters error",
				applogger.String("team_id", teamID),
				applogger.Error(err),
			)
		}
		return 0, fmt.Errorf("count filters: %w", err)
	}
	return n, nil
}

func (s *PGFilterStore) SoftDelete(ctx context.Context, id, teamID string) error {
	res := s.db.WithContext(ctx).
		Model(&filterRow{}).
		Where("id = ? AND team_id = ? AND deleted_at IS NULL", id, teamID).
		Update("deleted_at", time.Now().UTC())
	if res.Error != nil {
		if s.l != nil {
			s.l.Error("postgres delete_filter error",
				applogger.String("filter_id", id),
				applogger.String("team_id", teamID),
				applogger.Error(res.Error),
			)
		}
		return fmt.Errorf("delete filter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetDefault clears every other live default for the team and flags the
// named row, in one transaction. A missing or deleted target rolls back the
// clear so the previous default survives.
func (s *PGFilterStore) SetDefault(ctx context.Context, id, teamID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&filterRow{}).
			Where("team_id = ? AND id <> ? AND deleted_at IS NULL", teamID, id).
			Update("is_default", false).Error; err != nil {
			return err
		}
		res := tx.Model(&filterRow{}).
			Where("id = ? AND team_id = ? AND deleted_at IS NULL", id, teamID).
			Update("is_default", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		if s.l != nil {
			s.l.Error("postgres set_default_filter error",
				applogger.String("filter_id", id),
				applogger.String("team_id", teamID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("set default filter: %w", err)
	}
	return nil
}
