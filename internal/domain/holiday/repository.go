package holiday

import (
	"context"
	"time"
)

// HolidayResponse is the wire shape of one calendar entry.
type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

// Service exposes the holiday calendar as reference data.
type Service interface {
	ListByRange(ctx context.Context, startDate, endDate string) ([]HolidayResponse, error)
}

// HolidayRepository defines data access for the holiday calendar.
type HolidayRepository interface {
	// ListByRange returns holidays with a date inside [start, end].
	ListByRange(ctx context.Context, start, end time.Time, companyID string) ([]Holiday, error)
}
