package usecase

import (
	"testing"
	"time"

	"StockScreener/internal/domain/models"
)

func TestInitialSelectionPrefersDefault(t *testing.T) {
	now := time.Now()
	defs := []models.FilterDefinition{
		{ID: "a", CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "b", CreatedAt: now.Add(-2 * time.Hour), IsDefault: true},
		{ID: "c", CreatedAt: now.Add(-1 * time.Hour)},
	}
	if got := InitialSelection(defs); got.ID != "b" {
		t.Fatalf("expected default b, got %s", got.ID)
	}
}

func TestInitialSelectionFallsBackToEarliest(t *testing.T) {
	now := time.Now()
	defs := []models.FilterDefinition{
		{ID: "newer", CreatedAt: now},
		{ID: "oldest", CreatedAt: now.Add(-5 * time.Hour)},
		{ID: "middle", CreatedAt: now.Add(-1 * time.Hour)},
	}
	if got := InitialSelection(defs); got.ID != "oldest" {
		t.Fatalf("expected oldest, got %s", got.ID)
	}
}

func TestInitialSelectionEmptyTeam(t *testing.T) {
	got := InitialSelection(nil)
	if got.HasActiveCriteria() {
		t.Fatalf("empty team must get a match-everything filter")
	}
	if got.ID != "" {
		t.Fatalf("expected an unsaved definition, got id %s", got.ID)
	}
}

func TestSelectionSwapAndReset(t *testing.T) {
	var sel Selection

	if _, ok := sel.Current(); ok {
		t.Fatalf("fresh selection should be empty")
	}

	sel.Select(models.FilterDefinition{ID: "a"})
	cur, ok := sel.Current()
	if !ok || cur.ID != "a" {
		t.Fatalf("expected a, got %v %v", cur.ID, ok)
	}

	sel.Select(models.FilterDefinition{ID: "b"})
	if cur, _ = sel.Current(); cur.ID != "b" {
		t.Fatalf("swap did not take: %s", cur.ID)
	}

	sel.Reset()
	if _, ok := sel.Current(); ok {
		t.Fatalf("reset should clear the selection")
	}
}
