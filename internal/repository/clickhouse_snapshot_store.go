package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"StockScreener/internal/domain/models"
	pkgch "StockScreener/pkg/clickhouse"
	applogger "StockScreener/pkg/logger"
)

// CHSnapshotStore implements SnapshotStore backed by ClickHouse. The
// enrichment job writes one row per ticker per trading day; reads always
// target the most recent date only.
type CHSnapshotStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHSnapshotStore(ch *pkgch.Client, table string) *CHSnapshotStore {
	if table == "" {
		table = "screener.daily_snapshots"
	}
	return &CHSnapshotStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHSnapshotStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHSnapshotStore) Latest(ctx context.Context) ([]models.Snapshot, error) {
	start := time.Now()
	const qtpl = `
        SELECT id, ticker, date,
               open, high, low, close, volume,
               ema20, ema50, ema200,
               macd_line, macd_line_prev_day, macd_line_prev_prev_day, signal_line,
               rsi4, rsi14, willr4, willr14,
               iv, stoch_percent_k, stoch_percent_d, adr,
               last_updated_at
        FROM %s
        WHERE date = (SELECT max(date) FROM %s)
        ORDER BY ticker ASC
        LIMIT 1 BY ticker
    `
	q := fmt.Sprintf(qtpl, s.table, s.table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_snapshots query error",
				applogger.String("table", s.table),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("latest snapshots: %w", err)
	}
	defer rows.Close()

	out := make([]models.Snapshot, 0, 1024)
	for rows.Next() {
		var (
			snap   models.Snapshot
			ema200 sql.NullFloat64
		)
		if err := rows.Scan(
			&snap.ID, &snap.Ticker, &snap.Date,
			&snap.Open, &snap.High, &snap.Low, &snap.Close, &snap.Volume,
			&snap.EMA20, &snap.EMA50, &ema200,
			&snap.MACDLine, &snap.MACDLinePrevDay, &snap.MACDLinePrevPrevDay, &snap.SignalLine,
			&snap.RSI4, &snap.RSI14, &snap.Willr4, &snap.Willr14,
			&snap.IV, &snap.StochK, &snap.StochD, &snap.ADR,
			&snap.LastUpdatedAt,
		); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse latest_snapshots scan error",
					applogger.String("table", s.table),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if ema200.Valid {
			v := ema200.Float64
			snap.EMA200 = &v
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_snapshots rows error",
				applogger.String("table", s.table),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_snapshots ok",
			applogger.String("table", s.table),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}
