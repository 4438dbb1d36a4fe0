package http

import (
	"encoding/json"
	"net/http"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GenerateReport(w http.ResponseWriter, r *http.Request)
	GenerateBatchReport(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	RecordPunch(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	reportService attendance.ReportService
	punchService  attendance.PunchService
}

func NewAttendanceHandler(reportService attendance.ReportService, punchService attendance.PunchService) AttendanceHandler {
	return &attendanceHandlerImpl{
		reportService: reportService,
		punchService:  punchService,
	}
}

// GenerateReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req attendance.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	report, err := h.reportService.GenerateReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// GenerateBatchReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) GenerateBatchReport(w http.ResponseWriter, r *http.Request) {
	var req attendance.BatchReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	batch, err := h.reportService.GenerateBatchReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, batch)
}

// ListRecords implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	records, err := h.reportService.ListRecords(r.Context(), employeeID, startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// RecordPunch implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordPunch(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	punch, err := h.punchService.RecordPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", punch)
}
