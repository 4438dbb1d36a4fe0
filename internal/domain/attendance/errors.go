package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrInvalidConfig       = errors.New("invalid rule configuration")
	ErrReportNotFound      = errors.New("attendance report not found")
	ErrEmployeeRequired    = errors.New("employee id is required")
	ErrNoEmployeesInBatch  = errors.New("batch request contains no employees")
	ErrRangeTooLarge       = errors.New("date range exceeds the maximum report length")
	ErrRecordsNotPersisted = errors.New("daily records could not be persisted")
)
