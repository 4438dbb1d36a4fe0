package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/workclock/attendance-engine-go/internal/domain/leave"
	"github.com/workclock/attendance-engine-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

// ListApprovedByRange implements leave.LeaveRepository.
func (l *leaveRepository) ListApprovedByRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]leave.Application, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, company_id, employee_id, leave_type, start_date, end_date,
			   status, reason, created_at, updated_at
		FROM leave_applications
		WHERE employee_id = $1
		  AND company_id = $2
		  AND status = $3
		  AND start_date <= $4
		  AND end_date >= $5
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, leave.StatusApproved, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave applications: %w", err)
	}
	defer rows.Close()

	var applications []leave.Application
	for rows.Next() {
		var app leave.Application
		err := rows.Scan(
			&app.ID, &app.CompanyID, &app.EmployeeID, &app.LeaveType,
			&app.StartDate, &app.EndDate, &app.Status, &app.Reason,
			&app.CreatedAt, &app.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave application: %w", err)
		}
		applications = append(applications, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave applications: %w", err)
	}

	return applications, nil
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
