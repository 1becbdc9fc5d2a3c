package screener

import (
	"testing"

	"StockScreener/internal/domain/models"
)

func snapshots() []models.Snapshot {
	return []models.Snapshot{
		{Ticker: "AAA", RSI14: 40, Volume: "1000"},
		{Ticker: "BBB", RSI14: 55, Volume: "2000"},
		{Ticker: "CCC", RSI14: 70, Volume: "3000"},
		{Ticker: "DDD", RSI14: 20, Volume: "4000"},
	}
}

func TestApplyIdentityWithoutCriteria(t *testing.T) {
	in := snapshots()
	out := Apply(in, models.FilterDefinition{})
	if len(out) != len(in) {
		t.Fatalf("expected %d snapshots, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Ticker != in[i].Ticker {
			t.Fatalf("order changed at %d: %s != %s", i, out[i].Ticker, in[i].Ticker)
		}
	}
}

func TestApplyEmptyInput(t *testing.T) {
	f := models.FilterDefinition{Bounds: models.Bounds{MaxRSI14: dec("50")}}
	out := Apply(nil, f)
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %d", len(out))
	}
}

func TestApplyMinBoundLaw(t *testing.T) {
	in := snapshots()
	f := models.FilterDefinition{Bounds: models.Bounds{MinVolume: i64(2000)}}
	out := Apply(in, f)

	// AAA (1000) is the only exclusion; the boundary row BBB (2000) is kept
	// because min bounds are inclusive.
	want := []string{"BBB", "CCC", "DDD"}
	if len(out) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(out))
	}
	for i, ticker := range want {
		if out[i].Ticker != ticker {
			t.Fatalf("position %d: expected %s, got %s", i, ticker, out[i].Ticker)
		}
	}
}

func TestApplyPreservesRelativeOrder(t *testing.T) {
	in := snapshots()
	f := models.FilterDefinition{Bounds: models.Bounds{MaxRSI14: dec("60")}}
	out := Apply(in, f)

	want := []string{"AAA", "BBB", "DDD"}
	if len(out) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(out))
	}
	for i, ticker := range want {
		if out[i].Ticker != ticker {
			t.Fatalf("position %d: expected %s, got %s", i, ticker, out[i].Ticker)
		}
	}
}

func TestApplyIdempotent(t *testing.T) {
	in := snapshots()
	f := models.FilterDefinition{Bounds: models.Bounds{MaxRSI14: dec("60")}}

	once := Apply(in, f)
	twice := Apply(once, f)
	if len(once) != len(twice) {
		t.Fatalf("second application changed the result: %d != %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Ticker != twice[i].Ticker {
			t.Fatalf("second application reordered at %d", i)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := snapshots()
	f := models.FilterDefinition{Bounds: models.Bounds{MaxRSI14: dec("60")}}
	out := Apply(in, f)
	out[0].Ticker = "MUTATED"

	if in[0].Ticker != "AAA" {
		t.Fatalf("input aliased by result")
	}

	// the no-criteria path copies too
	full := Apply(in, models.FilterDefinition{})
	full[0].Ticker = "MUTATED"
	if in[0].Ticker != "AAA" {
		t.Fatalf("identity path aliased the input")
	}
}
