package screener

import "StockScreener/internal/domain/models"

// Apply reduces snapshots to the subset matching the filter. It is a stable
// filter-in-order operation: relative order is preserved, nothing is
// resorted, and the input slice is never mutated. An empty input yields an
// empty result; a filter with no active criteria yields the full input.
func Apply(snapshots []models.Snapshot, f models.FilterDefinition) []models.Snapshot {
	if !f.HasActiveCriteria() {
		out := make([]models.Snapshot, len(snapshots))
		copy(out, snapshots)
		return out
	}
	out := make([]models.Snapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if Matches(s, f) {
			out = append(out, s)
		}
	}
	return out
}
