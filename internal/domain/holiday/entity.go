package holiday

import "time"

// Holiday is a named calendar date. Configured weekend days behave the same
// way during processing and differ only in naming.
type Holiday struct {
	ID        string
	CompanyID string
	Date      time.Time
	Name      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
