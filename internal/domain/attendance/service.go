package attendance

import (
	"context"
	"time"
)

// ReportService defines the reconciliation operations exposed to handlers
// and scheduled jobs.
type ReportService interface {
	// GenerateReport materializes inputs for one employee, runs the
	// resolution engine over the period and returns the finalized records,
	// summary, shift-source counters and flagged entries.
	GenerateReport(ctx context.Context, req ReportRequest) (ReportResponse, error)

	// GenerateBatchReport fans independent per-employee runs out across a
	// bounded worker pool. Failures are collected per employee; one bad
	// employee never aborts the batch.
	GenerateBatchReport(ctx context.Context, req BatchReportRequest) (BatchReportResponse, error)

	// ListRecords returns previously persisted daily records.
	ListRecords(ctx context.Context, employeeID, startDate, endDate string) ([]DailyRecordResponse, error)

	// ReconcileDay regenerates and persists the records of one calendar
	// day for every active employee of the company. Unlike the request
	// operations it is not bound to an authenticated caller; the nightly
	// job iterates companies and invokes it directly.
	ReconcileDay(ctx context.Context, companyID string, day time.Time) (BatchReportResponse, error)
}

// PunchService ingests raw device punches. Punches are stored as-is; the
// in/out pairing happens later, inside report generation.
type PunchService interface {
	RecordPunch(ctx context.Context, req PunchRequest) (PunchResponse, error)
}
