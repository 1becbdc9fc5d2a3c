package models

// PlanTier is a team's billing plan as resolved by the external billing
// collaborator. Only the tier name is consumed here; subscription state,
// payment status and renewal dates stay with billing.
type PlanTier string

const (
	TierBase PlanTier = "base"
	TierPlus PlanTier = "plus"
)

// SavedFilterLimit returns the plan's cap on non-deleted saved filters.
// Unknown tiers get the base cap.
func (t PlanTier) SavedFilterLimit() int {
	if t == TierPlus {
		return 10
	}
	return 3
}
