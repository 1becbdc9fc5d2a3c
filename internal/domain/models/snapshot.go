package models

import "time"

// Snapshot is one ticker's enriched technical reading for a single trading
// day, produced upstream by the daily enrichment job. The store guarantees
// exactly one row per ticker per date; the engine only ever reads the most
// recent date and never writes snapshots.
type Snapshot struct {
	ID     string    `json:"id"`
	Ticker string    `json:"ticker"`
	Date   time.Time `json:"date"`

	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
	// Volume is kept as the decimal string the enrichment job emits; daily
	// volumes overflow what some upstream formats hold in a plain int.
	Volume string `json:"volume"`

	EMA20 float64 `json:"ema20"`
	EMA50 float64 `json:"ema50"`
	// EMA200 is nil for tickers without 200 sessions of history yet.
	EMA200 *float64 `json:"ema200,omitempty"`

	MACDLine            float64 `json:"macd_line"`
	MACDLinePrevDay     float64 `json:"macd_line_prev_day"`
	MACDLinePrevPrevDay float64 `json:"macd_line_prev_prev_day"`
	SignalLine          float64 `json:"signal_line"`

	RSI4    float64 `json:"rsi4"`
	RSI14   float64 `json:"rsi14"`
	Willr4  float64 `json:"willr4"`
	Willr14 float64 `json:"willr14"`

	IV     float64 `json:"iv"`
	StochK float64 `json:"stoch_percent_k"`
	StochD float64 `json:"stoch_percent_d"`
	ADR    float64 `json:"adr"`

	LastUpdatedAt time.Time `json:"last_updated_at"`
}
