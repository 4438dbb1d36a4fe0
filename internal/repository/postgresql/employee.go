package postgresql

import (
	"context"
	"fmt"

	"github.com/workclock/attendance-engine-go/internal/domain/employee"
	"github.com/workclock/attendance-engine-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, company_id, employee_code, full_name, default_shift_name,
			   expected_daily_hours, grace_minutes, overtime_start_after_minutes,
			   employment_status, created_at, updated_at, deleted_at
		FROM employees
		WHERE id = $1
		  AND company_id = $2
		  AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName, &emp.DefaultShiftName,
		&emp.ExpectedDailyHours, &emp.GraceMinutes, &emp.OvertimeStartAfterMinutes,
		&emp.EmploymentStatus, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepository) ListActive(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, company_id, employee_code, full_name, default_shift_name,
			   expected_daily_hours, grace_minutes, overtime_start_after_minutes,
			   employment_status, created_at, updated_at, deleted_at
		FROM employees
		WHERE company_id = $1
		  AND employment_status = $2
		  AND deleted_at IS NULL
		ORDER BY employee_code ASC
	`

	rows, err := q.Query(ctx, query, companyID, employee.EmploymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName, &emp.DefaultShiftName,
			&emp.ExpectedDailyHours, &emp.GraceMinutes, &emp.OvertimeStartAfterMinutes,
			&emp.EmploymentStatus, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// ListCompanyIDs implements employee.EmployeeRepository.
func (e *employeeRepository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT DISTINCT company_id
		FROM employees
		WHERE employment_status = $1
		  AND deleted_at IS NULL
		ORDER BY company_id ASC
	`

	rows, err := q.Query(ctx, query, employee.EmploymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query company ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company ids: %w", err)
	}

	return ids, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
