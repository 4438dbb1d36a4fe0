package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/pkg/database"
)

type recordRepository struct {
	db *database.DB
}

// ReplaceRange implements attendance.RecordRepository. The stored range is
// deleted and reinserted in one transaction so readers never observe a
// partially reconciled period.
func (r *recordRepository) ReplaceRange(ctx context.Context, employeeID string, start, end time.Time, records []attendance.DailyRecord, companyID string) error {
	deleteQuery := `
		DELETE FROM daily_records
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date >= $3
		  AND date <= $4
	`

	insertQuery := `
		INSERT INTO daily_records (
			employee_id, company_id, date, day_of_week, status, original_status,
			in_time, out_time, working_hours, late_minutes, early_out_minutes,
			overtime_hours, break_minutes, shift_name, shift_source,
			holiday_name, is_weekend,
			converted_from_late, converted_from_minimum_hours, converted_to_half_day,
			converted_from_incomplete_punch, excessive_working_hours,
			termination_risk, excessive_early_out,
			reason, flag_reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)
	`

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deleteQuery, employeeID, companyID, start, end); err != nil {
			return fmt.Errorf("failed to delete daily records: %w", err)
		}

		for _, rec := range records {
			_, err := tx.Exec(ctx, insertQuery,
				employeeID,
				companyID,
				rec.Date,
				rec.DayOfWeek,
				rec.Status,
				rec.OriginalStatus,
				rec.InTime,
				rec.OutTime,
				rec.WorkingHours,
				rec.LateMinutes,
				rec.EarlyOutMinutes,
				rec.OvertimeHours,
				rec.BreakMinutes,
				rec.ShiftName,
				rec.ShiftSource,
				rec.HolidayName,
				rec.IsWeekend,
				rec.ConvertedFromLate,
				rec.ConvertedFromMinimumHours,
				rec.ConvertedToHalfDay,
				rec.ConvertedFromIncompletePunch,
				rec.ExcessiveWorkingHours,
				rec.TerminationRisk,
				rec.ExcessiveEarlyOut,
				rec.Reason,
				rec.FlagReason,
			)
			if err != nil {
				return fmt.Errorf("failed to insert daily record for %s: %w", attendance.DateKey(rec.Date), err)
			}
		}

		return nil
	})
}

// ListByEmployeeAndRange implements attendance.RecordRepository.
func (r *recordRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, date, day_of_week, status, original_status,
			   in_time, out_time, working_hours, late_minutes, early_out_minutes,
			   overtime_hours, break_minutes, shift_name, shift_source,
			   holiday_name, is_weekend,
			   converted_from_late, converted_from_minimum_hours, converted_to_half_day,
			   converted_from_incomplete_punch, excessive_working_hours,
			   termination_risk, excessive_early_out,
			   reason, flag_reason, created_at, updated_at
		FROM daily_records
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date >= $3
		  AND date <= $4
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily records: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyRecord
	for rows.Next() {
		var rec attendance.DailyRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date, &rec.DayOfWeek,
			&rec.Status, &rec.OriginalStatus,
			&rec.InTime, &rec.OutTime, &rec.WorkingHours, &rec.LateMinutes, &rec.EarlyOutMinutes,
			&rec.OvertimeHours, &rec.BreakMinutes, &rec.ShiftName, &rec.ShiftSource,
			&rec.HolidayName, &rec.IsWeekend,
			&rec.ConvertedFromLate, &rec.ConvertedFromMinimumHours, &rec.ConvertedToHalfDay,
			&rec.ConvertedFromIncompletePunch, &rec.ExcessiveWorkingHours,
			&rec.TerminationRisk, &rec.ExcessiveEarlyOut,
			&rec.Reason, &rec.FlagReason, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily records: %w", err)
	}

	return records, nil
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepository{db: db}
}
