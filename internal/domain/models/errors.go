package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when an operation references a definition that
// does not exist, is already deleted, or belongs to another team. Callers
// get the same error in all three cases so existence of other teams' data
// is never confirmed or denied.
var ErrNotFound = errors.New("filter not found")

// ValidationError reports malformed or missing draft fields. It is an
// expected outcome and is returned as a value, never raised as a panic.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid filter draft"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "invalid filter draft: " + strings.Join(names, ", ")
}

// QuotaExceededError reports that a team is at its plan's saved-filter cap.
type QuotaExceededError struct {
	Tier  PlanTier
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("saved filter quota reached: %d filters allowed on the %s plan", e.Limit, e.Tier)
}

// StoreError wraps an unexpected persistence failure. The wrapped cause is
// logged server-side; callers only see the operation name.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
