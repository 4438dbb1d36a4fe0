package http

import (
	"net/http"

	"github.com/workclock/attendance-engine-go/internal/domain/holiday"
	"github.com/workclock/attendance-engine-go/internal/domain/shift"
	"github.com/workclock/attendance-engine-go/internal/handler/http/response"
)

// ReferenceHandler serves the read-only reference data the report surface
// is built on: the shift catalog and the holiday calendar.
type ReferenceHandler interface {
	ListShifts(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
}

type referenceHandlerImpl struct {
	shiftService   shift.Service
	holidayService holiday.Service
}

func NewReferenceHandler(shiftService shift.Service, holidayService holiday.Service) ReferenceHandler {
	return &referenceHandlerImpl{
		shiftService:   shiftService,
		holidayService: holidayService,
	}
}

// ListShifts implements ReferenceHandler.
func (h *referenceHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftService.ListDefinitions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

// ListHolidays implements ReferenceHandler.
func (h *referenceHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	holidays, err := h.holidayService.ListByRange(r.Context(), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}
