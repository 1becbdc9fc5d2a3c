package models

import (
	"errors"
	"testing"
)

func TestParseDraftEmptyBoundsStayNil(t *testing.T) {
	def, err := FilterDraft{Name: "momentum"}.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.HasActiveCriteria() {
		t.Fatalf("empty draft must yield a match-everything definition")
	}
}

func TestParseDraftThresholds(t *testing.T) {
	def, err := FilterDraft{
		Name:      "oversold",
		MinVolume: "1000000",
		MaxRSI14:  "30.50",
		MinWillr4: "-80",
	}.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.Bounds.MinVolume == nil || *def.Bounds.MinVolume != 1000000 {
		t.Fatalf("minVolume not parsed: %+v", def.Bounds.MinVolume)
	}
	if def.Bounds.MaxRSI14 == nil || def.Bounds.MaxRSI14.String() != "30.5" {
		t.Fatalf("maxRSI14 not parsed: %+v", def.Bounds.MaxRSI14)
	}
	if def.Bounds.MinWillr4 == nil || def.Bounds.MinWillr4.String() != "-80" {
		t.Fatalf("minWillr4 not parsed: %+v", def.Bounds.MinWillr4)
	}
}

func TestParseDraftCollectsAllFieldErrors(t *testing.T) {
	_, err := FilterDraft{Name: "", MaxRSI14: "high", MinVolume: "1.5"}.Parse()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "maxRSI14", "minVolume"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("missing error for %s: %v", field, verr.Fields)
		}
	}
}

func TestParseDraftTrimsWhitespace(t *testing.T) {
	def, err := FilterDraft{Name: "  spaced  ", MaxRSI14: " 60 "}.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.Name != "spaced" {
		t.Fatalf("name not trimmed: %q", def.Name)
	}
	if def.Bounds.MaxRSI14 == nil {
		t.Fatalf("padded numeric should still parse")
	}
}

func TestSavedFilterLimits(t *testing.T) {
	if got := TierBase.SavedFilterLimit(); got != 3 {
		t.Fatalf("base limit: %d", got)
	}
	if got := TierPlus.SavedFilterLimit(); got != 10 {
		t.Fatalf("plus limit: %d", got)
	}
	if got := PlanTier("enterprise-trial").SavedFilterLimit(); got != 3 {
		t.Fatalf("unknown tiers fall back to the base limit: %d", got)
	}
}
