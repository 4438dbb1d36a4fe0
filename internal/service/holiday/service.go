package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/holiday"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func NewHolidayService(holidayRepo holiday.HolidayRepository) holiday.Service {
	return &HolidayServiceImpl{HolidayRepository: holidayRepo}
}

// ListByRange implements holiday.Service.
func (s *HolidayServiceImpl) ListByRange(ctx context.Context, startDate, endDate string) ([]holiday.HolidayResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return nil, fmt.Errorf("company_id claim is missing or invalid")
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, attendance.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, attendance.ErrInvalidDateRange
	}
	if end.Before(start) {
		return nil, attendance.ErrInvalidDateRange
	}

	holidays, err := s.HolidayRepository.ListByRange(ctx, start, end, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	out := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, holiday.HolidayResponse{
			ID:   h.ID,
			Date: attendance.DateKey(h.Date),
			Name: h.Name,
		})
	}
	return out, nil
}
