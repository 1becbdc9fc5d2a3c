package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FilterDefinition is a named, persisted combination of threshold and
// confirmation criteria owned by a team. Saved definitions are immutable:
// changing thresholds always saves a new row, and deletion only sets
// DeletedAt. The one mutable bit is the default flag, which the store moves
// between rows inside a single transaction so a team never holds two
// defaults.
type FilterDefinition struct {
	ID     string `json:"id,omitempty"`
	TeamID string `json:"teamId,omitempty"`
	UserID string `json:"userId,omitempty"`
	Name   string `json:"name"`

	Bounds Bounds            `json:"bounds"`
	Flags  ConfirmationFlags `json:"flags"`

	IsDefault bool       `json:"isDefault"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	DeletedAt *time.Time `json:"-"`
}

// Bounds holds the optional numeric criteria. A nil bound imposes no
// constraint. Minimum bounds pass on reading >= bound and maximum bounds on
// reading <= bound, inclusive on both sides. Thresholds are carried as
// fixed-point decimals exactly as persisted; no rounding happens before
// comparison.
type Bounds struct {
	MinVolume  *int64           `json:"minVolume,omitempty"`
	MaxRSI4    *decimal.Decimal `json:"maxRSI4,omitempty"`
	MaxRSI14   *decimal.Decimal `json:"maxRSI14,omitempty"`
	MinIV      *decimal.Decimal `json:"minIV,omitempty"`
	MaxIV      *decimal.Decimal `json:"maxIV,omitempty"`
	MinWillr4  *decimal.Decimal `json:"minWillr4,omitempty"`
	MaxWillr4  *decimal.Decimal `json:"maxWillr4,omitempty"`
	MinWillr14 *decimal.Decimal `json:"minWillr14,omitempty"`
	MaxWillr14 *decimal.Decimal `json:"maxWillr14,omitempty"`
	MinStochK  *decimal.Decimal `json:"minStochK,omitempty"`
	MaxStochK  *decimal.Decimal `json:"maxStochK,omitempty"`
}

// ConfirmationFlags are the boolean multi-field criteria. Each flag, when
// set, requires the relation it names to hold on the snapshot.
type ConfirmationFlags struct {
	// MACDIncreasing: today's MACD line >= yesterday's >= the session before.
	MACDIncreasing bool `json:"macdIncreasing,omitempty"`
	// MACDLineAboveSignal: MACD line strictly above its signal line.
	MACDLineAboveSignal bool `json:"macdLineAboveSignal,omitempty"`
	// CloseAboveEMAStack: close >= EMA20 >= EMA50, and close >= EMA200 when
	// the long-term average is tracked for the ticker.
	CloseAboveEMAStack bool `json:"closeAboveEma20AboveEma50,omitempty"`
	// StochKAboveD: stochastic %K strictly above %D.
	StochKAboveD bool `json:"stochasticsKAboveD,omitempty"`
}

// Active reports whether any bound is set.
func (b Bounds) Active() bool {
	return b.MinVolume != nil ||
		b.MaxRSI4 != nil || b.MaxRSI14 != nil ||
		b.MinIV != nil || b.MaxIV != nil ||
		b.MinWillr4 != nil || b.MaxWillr4 != nil ||
		b.MinWillr14 != nil || b.MaxWillr14 != nil ||
		b.MinStochK != nil || b.MaxStochK != nil
}

// Active reports whether any confirmation flag is set.
func (f ConfirmationFlags) Active() bool {
	return f.MACDIncreasing || f.MACDLineAboveSignal || f.CloseAboveEMAStack || f.StochKAboveD
}

// HasActiveCriteria reports whether the definition constrains anything at
// all. A definition with no active criteria matches every snapshot.
func (d FilterDefinition) HasActiveCriteria() bool {
	return d.Bounds.Active() || d.Flags.Active()
}

// FilterDraft carries raw, user-entered preset fields before validation.
// Numeric thresholds arrive as strings from the form layer; empty string
// means the bound is not set.
type FilterDraft struct {
	Name       string
	MinVolume  string
	MaxRSI4    string
	MaxRSI14   string
	MinIV      string
	MaxIV      string
	MinWillr4  string
	MaxWillr4  string
	MinWillr14 string
	MaxWillr14 string
	MinStochK  string
	MaxStochK  string

	MACDIncreasing      bool
	MACDLineAboveSignal bool
	CloseAboveEMAStack  bool
	StochKAboveD        bool
}

// Parse validates the draft and converts it to an unsaved FilterDefinition.
// It returns a *ValidationError listing every malformed field; a draft with
// a name and no criteria is valid and yields a match-everything definition.
func (d FilterDraft) Parse() (FilterDefinition, error) {
	verr := &ValidationError{Fields: map[string]string{}}

	name := strings.TrimSpace(d.Name)
	if name == "" {
		verr.Fields["name"] = "name is required"
	}

	def := FilterDefinition{Name: name}
	def.Bounds.MinVolume = parseVolume("minVolume", d.MinVolume, verr)
	def.Bounds.MaxRSI4 = parseBound("maxRSI4", d.MaxRSI4, verr)
	def.Bounds.MaxRSI14 = parseBound("maxRSI14", d.MaxRSI14, verr)
	def.Bounds.MinIV = parseBound("minIV", d.MinIV, verr)
	def.Bounds.MaxIV = parseBound("maxIV", d.MaxIV, verr)
	def.Bounds.MinWillr4 = parseBound("minWillr4", d.MinWillr4, verr)
	def.Bounds.MaxWillr4 = parseBound("maxWillr4", d.MaxWillr4, verr)
	def.Bounds.MinWillr14 = parseBound("minWillr14", d.MinWillr14, verr)
	def.Bounds.MaxWillr14 = parseBound("maxWillr14", d.MaxWillr14, verr)
	def.Bounds.MinStochK = parseBound("minStochK", d.MinStochK, verr)
	def.Bounds.MaxStochK = parseBound("maxStochK", d.MaxStochK, verr)

	def.Flags = ConfirmationFlags{
		MACDIncreasing:      d.MACDIncreasing,
		MACDLineAboveSignal: d.MACDLineAboveSignal,
		CloseAboveEMAStack:  d.CloseAboveEMAStack,
		StochKAboveD:        d.StochKAboveD,
	}

	if len(verr.Fields) > 0 {
		return FilterDefinition{}, verr
	}
	return def, nil
}

func parseBound(field, raw string, verr *ValidationError) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		verr.Fields[field] = "must be a number"
		return nil
	}
	return &v
}

func parseVolume(field, raw string, verr *ValidationError) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		verr.Fields[field] = "must be an integer"
		return nil
	}
	return &v
}
