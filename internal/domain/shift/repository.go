package shift

import (
	"context"
	"time"
)

// DefinitionResponse is the wire shape of one shift definition.
type DefinitionResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	GraceMinutes *int   `json:"grace_minutes,omitempty"`
	IsOvernight  bool   `json:"is_overnight"`
}

// Service exposes the shift catalog as reference data.
type Service interface {
	ListDefinitions(ctx context.Context) ([]DefinitionResponse, error)
}

// ShiftRepository defines data access for shift definitions and roster
// bindings. All methods include companyID to prevent cross-company access.
type ShiftRepository interface {
	// ListDefinitions returns the active shift catalog.
	ListDefinitions(ctx context.Context, companyID string) ([]Definition, error)

	// GetDefinitionByName retrieves one shift by its unique name.
	GetDefinitionByName(ctx context.Context, name string, companyID string) (Definition, error)

	// ListRosterDays returns exact-date roster overrides for the employee
	// within [start, end].
	ListRosterDays(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]RosterDay, error)

	// ListAssignments returns range assignments overlapping [start, end].
	ListAssignments(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]RosterAssignment, error)
}
