package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/employee"
)

type AttendanceJobs struct {
	reportService attendance.ReportService
	employeeRepo  employee.EmployeeRepository
}

func NewAttendanceJobs(
	reportService attendance.ReportService,
	employeeRepo employee.EmployeeRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		reportService: reportService,
		employeeRepo:  employeeRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reconcile_previous_day", 1*time.Hour, j.ReconcilePreviousDay)
}

// ReconcilePreviousDay regenerates and persists yesterday's records for
// every active employee across all companies. The device sync window has
// closed by then, so the finalized records are stable.
func (j *AttendanceJobs) ReconcilePreviousDay(ctx context.Context) error {
	// Only run at 01:00-01:59 UTC
	if time.Now().UTC().Hour() != 1 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	slog.Info("Cron: Starting previous-day reconciliation", "date", attendance.DateKey(yesterday))

	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	var failed int
	for _, companyID := range companyIDs {
		resp, err := j.reportService.ReconcileDay(ctx, companyID, yesterday)
		if err != nil {
			failed++
			slog.Error("Cron: Company reconciliation failed", "company_id", companyID, "error", err)
			continue
		}
		if resp.Failed > 0 {
			slog.Warn("Cron: Company reconciliation finished with failures",
				"company_id", companyID, "succeeded", resp.Succeeded, "failed", resp.Failed)
		} else {
			slog.Info("Cron: Company reconciliation completed",
				"company_id", companyID, "employees", resp.Succeeded)
		}
	}

	if failed > 0 {
		return fmt.Errorf("reconciliation failed for %d of %d companies", failed, len(companyIDs))
	}

	slog.Info("Cron: Previous-day reconciliation completed", "companies", len(companyIDs))
	return nil
}
