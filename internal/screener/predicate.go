// Package screener holds the pure filter engine: the predicate that decides
// whether one snapshot satisfies a filter definition, and the reducer that
// applies it over a snapshot set. Nothing here touches a store or holds
// state, so everything is safe for any number of concurrent callers.
package screener

import (
	"strings"

	"github.com/shopspring/decimal"

	"StockScreener/internal/domain/models"
)

// Matches reports whether the snapshot satisfies every active criterion of
// the filter. Criteria combine as a single conjunction; there is no OR and
// no precedence. A filter with no active criteria matches everything.
func Matches(s models.Snapshot, f models.FilterDefinition) bool {
	return boundsHold(s, f.Bounds) && flagsHold(s, f.Flags)
}

func boundsHold(s models.Snapshot, b models.Bounds) bool {
	if b.MinVolume != nil {
		vol, err := decimal.NewFromString(strings.TrimSpace(s.Volume))
		if err != nil {
			// an unreadable volume can never satisfy a volume bound
			return false
		}
		if vol.Cmp(decimal.NewFromInt(*b.MinVolume)) < 0 {
			return false
		}
	}
	return maxHolds(s.RSI4, b.MaxRSI4) &&
		maxHolds(s.RSI14, b.MaxRSI14) &&
		minHolds(s.IV, b.MinIV) &&
		maxHolds(s.IV, b.MaxIV) &&
		minHolds(s.Willr4, b.MinWillr4) &&
		maxHolds(s.Willr4, b.MaxWillr4) &&
		minHolds(s.Willr14, b.MinWillr14) &&
		maxHolds(s.Willr14, b.MaxWillr14) &&
		minHolds(s.StochK, b.MinStochK) &&
		maxHolds(s.StochK, b.MaxStochK)
}

func flagsHold(s models.Snapshot, f models.ConfirmationFlags) bool {
	if f.CloseAboveEMAStack {
		if s.Close < s.EMA20 || s.EMA20 < s.EMA50 {
			return false
		}
		if s.EMA200 != nil && s.Close < *s.EMA200 {
			return false
		}
	}
	if f.MACDIncreasing {
		if s.MACDLine < s.MACDLinePrevDay || s.MACDLinePrevDay < s.MACDLinePrevPrevDay {
			return false
		}
	}
	if f.MACDLineAboveSignal && s.MACDLine <= s.SignalLine {
		return false
	}
	if f.StochKAboveD && s.StochK <= s.StochD {
		return false
	}
	return true
}

// minHolds reports reading >= bound. Comparison happens in decimal space so
// a threshold exactly equal to the reading is inclusive; a nil bound always
// holds.
func minHolds(reading float64, bound *decimal.Decimal) bool {
	if bound == nil {
		return true
	}
	return decimal.NewFromFloat(reading).Cmp(*bound) >= 0
}

// maxHolds reports reading <= bound, inclusive; a nil bound always holds.
func maxHolds(reading float64, bound *decimal.Decimal) bool {
	if bound == nil {
		return true
	}
	return decimal.NewFromFloat(reading).Cmp(*bound) <= 0
}
