package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/workclock/attendance-engine-go/internal/domain/holiday"
	"github.com/workclock/attendance-engine-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

// ListByRange implements holiday.HolidayRepository.
func (h *holidayRepository) ListByRange(ctx context.Context, start, end time.Time, companyID string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, company_id, date, name, created_at, updated_at
		FROM holidays
		WHERE company_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hol holiday.Holiday
		err := rows.Scan(&hol.ID, &hol.CompanyID, &hol.Date, &hol.Name, &hol.CreatedAt, &hol.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return holidays, nil
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}
