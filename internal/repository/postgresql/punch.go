package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/pkg/database"
)

type punchRepository struct {
	db *database.DB
}

// ListByEmployeeAndRange implements attendance.PunchRepository.
func (p *punchRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]attendance.PunchEvent, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, company_id, punched_at, direction, device_id, created_at
		FROM punch_events
		WHERE employee_id = $1
		  AND company_id = $2
		  AND punched_at >= $3
		  AND punched_at < $4
		ORDER BY punched_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to query punch events: %w", err)
	}
	defer rows.Close()

	var punches []attendance.PunchEvent
	for rows.Next() {
		var punch attendance.PunchEvent
		err := rows.Scan(
			&punch.ID, &punch.EmployeeID, &punch.CompanyID,
			&punch.Timestamp, &punch.Direction, &punch.DeviceID,
			&punch.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		punches = append(punches, punch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch events: %w", err)
	}

	return punches, nil
}

// Create implements attendance.PunchRepository.
func (p *punchRepository) Create(ctx context.Context, punch attendance.PunchEvent) (attendance.PunchEvent, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO punch_events (id, employee_id, company_id, punched_at, direction, device_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		punch.ID,
		punch.EmployeeID,
		punch.CompanyID,
		punch.Timestamp,
		punch.Direction,
		punch.DeviceID,
	).Scan(&punch.CreatedAt)
	if err != nil {
		return attendance.PunchEvent{}, fmt.Errorf("failed to insert punch event: %w", err)
	}

	return punch, nil
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepository{db: db}
}
