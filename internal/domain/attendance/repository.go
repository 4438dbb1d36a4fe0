package attendance

import (
	"context"
	"time"
)

// PunchRepository reads raw biometric punch events. All methods include
// companyID to prevent cross-company data access.
type PunchRepository interface {
	// ListByEmployeeAndRange returns punches whose timestamp falls within
	// [start, end] (end exclusive of the following day), ordered ascending.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]PunchEvent, error)

	// Create stores a single device punch.
	Create(ctx context.Context, punch PunchEvent) (PunchEvent, error)
}

// RecordRepository persists finalized daily attendance records. Writes for
// one employee/period are serialized by the caller; the engine itself never
// touches storage.
type RecordRepository interface {
	// ReplaceRange deletes the stored records for the employee in
	// [start, end] and inserts the finalized sequence in one transaction.
	ReplaceRange(ctx context.Context, employeeID string, start, end time.Time, records []DailyRecord, companyID string) error

	// ListByEmployeeAndRange returns stored records ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]DailyRecord, error)
}
