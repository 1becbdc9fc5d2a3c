package models

import "time"

// ActivityType names an auditable team action. The vocabulary matches the
// activity_logs rows the rest of the platform already writes.
type ActivityType string

const (
	ActivitySignUp           ActivityType = "SIGN_UP"
	ActivityCreateTeam       ActivityType = "CREATE_TEAM"
	ActivityAddFilter        ActivityType = "ADD_FILTER"
	ActivityDeleteFilter     ActivityType = "DELETE_FILTER"
	ActivitySetDefaultFilter ActivityType = "SET_DEFAULT_FILTER"
)

// ActivityEntry is one audit record. Recording is fire-and-forget: a sink
// failure never fails the operation that produced the entry.
type ActivityEntry struct {
	TeamID    string       `json:"teamId"`
	UserID    string       `json:"userId"`
	Action    ActivityType `json:"action"`
	Timestamp time.Time    `json:"timestamp"`
}
