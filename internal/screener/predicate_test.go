package screener

import (
	"testing"

	"github.com/shopspring/decimal"

	"StockScreener/internal/domain/models"
)

func dec(s string) *decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &v
}

func i64(v int64) *int64 { return &v }

func baseSnapshot() models.Snapshot {
	return models.Snapshot{
		Ticker: "ABC",
		Close:  11,
		Volume: "2000000",
		EMA20:  10,
		EMA50:  9,
		RSI14:  55,
	}
}

func TestMatchesEmptyFilterMatchesEverything(t *testing.T) {
	if !Matches(models.Snapshot{Ticker: "X"}, models.FilterDefinition{}) {
		t.Fatalf("expected match with no active criteria")
	}
}

func TestMatchesCombinedScenario(t *testing.T) {
	f := models.FilterDefinition{
		Bounds: models.Bounds{MaxRSI14: dec("60"), MinVolume: i64(1000000)},
		Flags:  models.ConfirmationFlags{CloseAboveEMAStack: true},
	}
	if !Matches(baseSnapshot(), f) {
		t.Fatalf("expected match")
	}
}

func TestMatchesMaxRSIExceeded(t *testing.T) {
	f := models.FilterDefinition{Bounds: models.Bounds{MaxRSI14: dec("50")}}
	if Matches(baseSnapshot(), f) {
		t.Fatalf("expected no match: rsi14 55 > 50")
	}
}

func TestMatchesBoundsAreInclusive(t *testing.T) {
	s := baseSnapshot()
	f := models.FilterDefinition{Bounds: models.Bounds{MaxRSI14: dec("55")}}
	if !Matches(s, f) {
		t.Fatalf("max bound equal to reading must pass")
	}
	s.IV = 30
	f = models.FilterDefinition{Bounds: models.Bounds{MinIV: dec("30")}}
	if !Matches(s, f) {
		t.Fatalf("min bound equal to reading must pass")
	}
	f = models.FilterDefinition{Bounds: models.Bounds{MinIV: dec("30.01")}}
	if Matches(s, f) {
		t.Fatalf("reading below min bound must fail")
	}
}

func TestMatchesVolumeCoercion(t *testing.T) {
	s := baseSnapshot()
	s.Volume = "9223372036854775807"
	f := models.FilterDefinition{Bounds: models.Bounds{MinVolume: i64(1)}}
	if !Matches(s, f) {
		t.Fatalf("wide volume string should coerce and pass")
	}
	s.Volume = "2000000"
	f = models.FilterDefinition{Bounds: models.Bounds{MinVolume: i64(2000000)}}
	if !Matches(s, f) {
		t.Fatalf("volume equal to min bound must pass")
	}
	f = models.FilterDefinition{Bounds: models.Bounds{MinVolume: i64(2000001)}}
	if Matches(s, f) {
		t.Fatalf("volume below min bound must fail")
	}
	s.Volume = "not-a-number"
	f = models.FilterDefinition{Bounds: models.Bounds{MinVolume: i64(1)}}
	if Matches(s, f) {
		t.Fatalf("unreadable volume can never satisfy a volume bound")
	}
}

func TestMatchesMACDIncreasing(t *testing.T) {
	f := models.FilterDefinition{Flags: models.ConfirmationFlags{MACDIncreasing: true}}

	s := baseSnapshot()
	s.MACDLine, s.MACDLinePrevDay, s.MACDLinePrevPrevDay = 1.0, 1.2, 0.9
	if Matches(s, f) {
		t.Fatalf("1.0 < 1.2 violates the three-session increase")
	}

	s.MACDLine, s.MACDLinePrevDay, s.MACDLinePrevPrevDay = 1.3, 1.2, 0.9
	if !Matches(s, f) {
		t.Fatalf("monotone non-decreasing chain should pass")
	}

	// flat sessions count as increasing (>=, not strict)
	s.MACDLine, s.MACDLinePrevDay, s.MACDLinePrevPrevDay = 1.2, 1.2, 1.2
	if !Matches(s, f) {
		t.Fatalf("flat chain should pass")
	}
}

func TestMatchesMACDLineAboveSignal(t *testing.T) {
	f := models.FilterDefinition{Flags: models.ConfirmationFlags{MACDLineAboveSignal: true}}

	s := baseSnapshot()
	s.MACDLine, s.SignalLine = 1.5, 1.0
	if !Matches(s, f) {
		t.Fatalf("macd above signal should pass")
	}
	s.MACDLine, s.SignalLine = 1.0, 1.0
	if Matches(s, f) {
		t.Fatalf("equality must fail: the flag is strict")
	}
}

func TestMatchesEMAStack(t *testing.T) {
	f := models.FilterDefinition{Flags: models.ConfirmationFlags{CloseAboveEMAStack: true}}

	s := baseSnapshot() // close 11, ema20 10, ema50 9
	if !Matches(s, f) {
		t.Fatalf("stacked averages should pass")
	}

	s.EMA50 = 10.5
	if Matches(s, f) {
		t.Fatalf("ema20 < ema50 breaks the stack")
	}

	s = baseSnapshot()
	ema200 := 12.0
	s.EMA200 = &ema200
	if Matches(s, f) {
		t.Fatalf("close below a tracked ema200 breaks the stack")
	}
	ema200 = 11.0
	if !Matches(s, f) {
		t.Fatalf("close equal to ema200 passes: bounds side is inclusive")
	}
}

func TestMatchesStochKAboveD(t *testing.T) {
	f := models.FilterDefinition{Flags: models.ConfirmationFlags{StochKAboveD: true}}

	s := baseSnapshot()
	s.StochK, s.StochD = 80, 70
	if !Matches(s, f) {
		t.Fatalf("%%K above %%D should pass")
	}
	s.StochK, s.StochD = 70, 70
	if Matches(s, f) {
		t.Fatalf("equality must fail: the flag is strict")
	}
}

func TestMatchesWilliamsRBoundsDirection(t *testing.T) {
	// Williams %R is negative-valued; the min bound is still value >= bound.
	s := baseSnapshot()
	s.Willr14 = -20

	f := models.FilterDefinition{Bounds: models.Bounds{MinWillr14: dec("-50")}}
	if !Matches(s, f) {
		t.Fatalf("-20 >= -50 should pass the min bound")
	}
	f = models.FilterDefinition{Bounds: models.Bounds{MaxWillr14: dec("-50")}}
	if Matches(s, f) {
		t.Fatalf("-20 <= -50 is false, max bound must fail")
	}
}

func TestMatchesAllCriteriaAreConjoined(t *testing.T) {
	s := baseSnapshot()
	s.StochK, s.StochD = 80, 70
	f := models.FilterDefinition{
		Bounds: models.Bounds{MaxRSI14: dec("60")},
		Flags:  models.ConfirmationFlags{StochKAboveD: true, MACDLineAboveSignal: true},
	}
	// MACD line defaults to 0 == signal line, so the conjunction fails even
	// though the other two criteria hold.
	if Matches(s, f) {
		t.Fatalf("one failing criterion must fail the whole conjunction")
	}
}
