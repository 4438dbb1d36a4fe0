package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/workclock/attendance-engine-go/internal/domain/shift"
	"github.com/workclock/attendance-engine-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

// ListDefinitions implements shift.ShiftRepository.
func (s *shiftRepository) ListDefinitions(ctx context.Context, companyID string) ([]shift.Definition, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, name, start_time, end_time, break_minutes,
			   grace_minutes, is_active, created_at, updated_at
		FROM shift_definitions
		WHERE company_id = $1
		  AND is_active = TRUE
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift definitions: %w", err)
	}
	defer rows.Close()

	var definitions []shift.Definition
	for rows.Next() {
		var def shift.Definition
		err := rows.Scan(
			&def.ID, &def.CompanyID, &def.Name, &def.StartTime, &def.EndTime,
			&def.BreakMinutes, &def.GraceMinutes, &def.IsActive,
			&def.CreatedAt, &def.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift definition: %w", err)
		}
		definitions = append(definitions, def)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift definitions: %w", err)
	}

	return definitions, nil
}

// GetDefinitionByName implements shift.ShiftRepository.
func (s *shiftRepository) GetDefinitionByName(ctx context.Context, name string, companyID string) (shift.Definition, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, name, start_time, end_time, break_minutes,
			   grace_minutes, is_active, created_at, updated_at
		FROM shift_definitions
		WHERE name = $1
		  AND company_id = $2
	`

	var def shift.Definition
	err := q.QueryRow(ctx, query, name, companyID).Scan(
		&def.ID, &def.CompanyID, &def.Name, &def.StartTime, &def.EndTime,
		&def.BreakMinutes, &def.GraceMinutes, &def.IsActive,
		&def.CreatedAt, &def.UpdatedAt,
	)
	if err != nil {
		return shift.Definition{}, err
	}

	return def, nil
}

// ListRosterDays implements shift.ShiftRepository.
func (s *shiftRepository) ListRosterDays(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]shift.RosterDay, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, employee_id, date, shift_name, created_at, updated_at
		FROM roster_days
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date >= $3
		  AND date <= $4
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster days: %w", err)
	}
	defer rows.Close()

	var days []shift.RosterDay
	for rows.Next() {
		var day shift.RosterDay
		err := rows.Scan(
			&day.ID, &day.CompanyID, &day.EmployeeID, &day.Date, &day.ShiftName,
			&day.CreatedAt, &day.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster day: %w", err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster days: %w", err)
	}

	return days, nil
}

// ListAssignments implements shift.ShiftRepository.
func (s *shiftRepository) ListAssignments(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]shift.RosterAssignment, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, employee_id, shift_name, start_date, end_date,
			   created_at, updated_at
		FROM roster_assignments
		WHERE employee_id = $1
		  AND company_id = $2
		  AND start_date <= $3
		  AND end_date >= $4
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.RosterAssignment
	for rows.Next() {
		var assignment shift.RosterAssignment
		err := rows.Scan(
			&assignment.ID, &assignment.CompanyID, &assignment.EmployeeID,
			&assignment.ShiftName, &assignment.StartDate, &assignment.EndDate,
			&assignment.CreatedAt, &assignment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster assignments: %w", err)
	}

	return assignments, nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}
