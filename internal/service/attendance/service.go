package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/employee"
	"github.com/workclock/attendance-engine-go/internal/domain/holiday"
	"github.com/workclock/attendance-engine-go/internal/domain/leave"
	"github.com/workclock/attendance-engine-go/internal/domain/shift"
)

// maxRangeDays caps a single report period. Anything longer should be
// split into consecutive requests by the caller.
const maxRangeDays = 366

type ReportServiceImpl struct {
	workers int
	attendance.PunchRepository
	attendance.RecordRepository
	employee.EmployeeRepository
	shift.ShiftRepository
	holiday.HolidayRepository
	leave.LeaveRepository
}

func NewReportService(
	workers int,
	punchRepo attendance.PunchRepository,
	recordRepo attendance.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	holidayRepo holiday.HolidayRepository,
	leaveRepo leave.LeaveRepository,
) attendance.ReportService {
	return &ReportServiceImpl{
		workers:            workers,
		PunchRepository:    punchRepo,
		RecordRepository:   recordRepo,
		EmployeeRepository: employeeRepo,
		ShiftRepository:    shiftRepo,
		HolidayRepository:  holidayRepo,
		LeaveRepository:    leaveRepo,
	}
}

// GenerateReport implements attendance.ReportService.
func (s *ReportServiceImpl) GenerateReport(ctx context.Context, req attendance.ReportRequest) (attendance.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ReportResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.ReportResponse{}, err
	}

	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return attendance.ReportResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ReportResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.ReportResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	engine, err := NewEngine(effectiveConfig(req.Config))
	if err != nil {
		return attendance.ReportResponse{}, fmt.Errorf("%w: %s", attendance.ErrInvalidConfig, err)
	}

	shifts, err := s.ShiftRepository.ListDefinitions(ctx, companyID)
	if err != nil {
		return attendance.ReportResponse{}, fmt.Errorf("failed to list shift definitions: %w", err)
	}

	holidays, err := s.loadHolidays(ctx, start, end, companyID)
	if err != nil {
		return attendance.ReportResponse{}, err
	}

	input, err := s.loadEmployeeInput(ctx, emp.ID, start, end, companyID, shifts, holidays)
	if err != nil {
		return attendance.ReportResponse{}, err
	}

	result, err := engine.Run(emp, input)
	if err != nil {
		return attendance.ReportResponse{}, err
	}

	if req.Persist {
		if err := s.persist(ctx, emp.ID, start, end, result.Records, companyID); err != nil {
			return attendance.ReportResponse{}, err
		}
	}

	return toReportResponse(emp, req.StartDate, req.EndDate, *result), nil
}

// GenerateBatchReport implements attendance.ReportService.
func (s *ReportServiceImpl) GenerateBatchReport(ctx context.Context, req attendance.BatchReportRequest) (attendance.BatchReportResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BatchReportResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.BatchReportResponse{}, err
	}

	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return attendance.BatchReportResponse{}, err
	}

	return s.runBatch(ctx, companyID, req.EmployeeIDs, start, end, req.Persist, req.Config)
}

// ReconcileDay implements attendance.ReportService.
func (s *ReportServiceImpl) ReconcileDay(ctx context.Context, companyID string, day time.Time) (attendance.BatchReportResponse, error) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.runBatch(ctx, companyID, nil, day, day, true, nil)
}

// runBatch fans the period out across every requested employee on the
// bounded worker pool and collects per-employee failures without aborting
// the rest.
func (s *ReportServiceImpl) runBatch(ctx context.Context, companyID string, employeeIDs []string, start, end time.Time, persist bool, override *attendance.RuleConfiguration) (attendance.BatchReportResponse, error) {
	engine, err := NewEngine(effectiveConfig(override))
	if err != nil {
		return attendance.BatchReportResponse{}, fmt.Errorf("%w: %s", attendance.ErrInvalidConfig, err)
	}

	resp := attendance.BatchReportResponse{
		StartDate: attendance.DateKey(start),
		EndDate:   attendance.DateKey(end),
		Errors:    make(map[string]string),
	}

	employees, err := s.resolveEmployees(ctx, employeeIDs, companyID, resp.Errors)
	if err != nil {
		return attendance.BatchReportResponse{}, err
	}
	if len(employees) == 0 && len(resp.Errors) == 0 {
		return attendance.BatchReportResponse{}, attendance.ErrNoEmployeesInBatch
	}

	// The shift catalog and the holiday calendar are company-wide; load
	// them once and share across all jobs.
	shifts, err := s.ShiftRepository.ListDefinitions(ctx, companyID)
	if err != nil {
		return attendance.BatchReportResponse{}, fmt.Errorf("failed to list shift definitions: %w", err)
	}
	holidays, err := s.loadHolidays(ctx, start, end, companyID)
	if err != nil {
		return attendance.BatchReportResponse{}, err
	}

	jobs := make([]BatchJob, 0, len(employees))
	for _, emp := range employees {
		input, err := s.loadEmployeeInput(ctx, emp.ID, start, end, companyID, shifts, holidays)
		if err != nil {
			resp.Errors[emp.ID] = err.Error()
			continue
		}
		jobs = append(jobs, BatchJob{Employee: emp, Input: input})
	}

	byID := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	runner := NewBatchRunner(s.workers, engine)
	for _, outcome := range runner.Run(ctx, jobs) {
		if outcome.Err != nil {
			resp.Errors[outcome.EmployeeID] = outcome.Err.Error()
			continue
		}
		if persist {
			if err := s.persist(ctx, outcome.EmployeeID, start, end, outcome.Result.Records, companyID); err != nil {
				resp.Errors[outcome.EmployeeID] = err.Error()
				continue
			}
		}
		resp.Reports = append(resp.Reports, toReportResponse(byID[outcome.EmployeeID], resp.StartDate, resp.EndDate, *outcome.Result))
	}

	resp.Succeeded = len(resp.Reports)
	resp.Failed = len(resp.Errors)
	if len(resp.Errors) == 0 {
		resp.Errors = nil
	}
	return resp, nil
}

// ListRecords implements attendance.ReportService.
func (s *ReportServiceImpl) ListRecords(ctx context.Context, employeeID, startDate, endDate string) ([]attendance.DailyRecordResponse, error) {
	if employeeID == "" {
		return nil, attendance.ErrEmployeeRequired
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	start, end, err := parsePeriod(startDate, endDate)
	if err != nil {
		return nil, err
	}

	records, err := s.RecordRepository.ListByEmployeeAndRange(ctx, employeeID, start, end, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}
	if len(records) == 0 {
		return nil, attendance.ErrReportNotFound
	}

	out := make([]attendance.DailyRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}
	return out, nil
}

func (s *ReportServiceImpl) resolveEmployees(ctx context.Context, ids []string, companyID string, errsOut map[string]string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		employees, err := s.EmployeeRepository.ListActive(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list active employees: %w", err)
		}
		return employees, nil
	}

	employees := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		emp, err := s.EmployeeRepository.GetByID(ctx, id, companyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				errsOut[id] = employee.ErrEmployeeNotFound.Error()
				continue
			}
			return nil, fmt.Errorf("failed to get employee %s: %w", id, err)
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

func (s *ReportServiceImpl) loadHolidays(ctx context.Context, start, end time.Time, companyID string) (map[string]holiday.Holiday, error) {
	list, err := s.HolidayRepository.ListByRange(ctx, start, end, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	holidays := make(map[string]holiday.Holiday, len(list))
	for _, h := range list {
		holidays[attendance.DateKey(h.Date)] = h
	}
	return holidays, nil
}

// loadEmployeeInput materializes everything a single run needs up front so
// the engine itself stays free of I/O.
func (s *ReportServiceImpl) loadEmployeeInput(ctx context.Context, employeeID string, start, end time.Time, companyID string, shifts []shift.Definition, holidays map[string]holiday.Holiday) (RunInput, error) {
	punches, err := s.PunchRepository.ListByEmployeeAndRange(ctx, employeeID, start, end, companyID)
	if err != nil {
		return RunInput{}, fmt.Errorf("failed to list punches: %w", err)
	}

	rosterList, err := s.ShiftRepository.ListRosterDays(ctx, employeeID, start, end, companyID)
	if err != nil {
		return RunInput{}, fmt.Errorf("failed to list roster days: %w", err)
	}
	rosterDays := make(map[string]shift.RosterDay, len(rosterList))
	for _, rd := range rosterList {
		rosterDays[attendance.DateKey(rd.Date)] = rd
	}

	assignments, err := s.ShiftRepository.ListAssignments(ctx, employeeID, start, end, companyID)
	if err != nil {
		return RunInput{}, fmt.Errorf("failed to list roster assignments: %w", err)
	}

	applications, err := s.LeaveRepository.ListApprovedByRange(ctx, employeeID, start, end, companyID)
	if err != nil {
		return RunInput{}, fmt.Errorf("failed to list leave applications: %w", err)
	}
	leaveDates := make(map[string]string)
	for _, app := range applications {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if app.Covers(d) {
				leaveDates[attendance.DateKey(d)] = app.LeaveType
			}
		}
	}

	return RunInput{
		StartDate:   start,
		EndDate:     end,
		Punches:     punches,
		Holidays:    holidays,
		LeaveDates:  leaveDates,
		RosterDays:  rosterDays,
		Assignments: assignments,
		Shifts:      shifts,
	}, nil
}

func (s *ReportServiceImpl) persist(ctx context.Context, employeeID string, start, end time.Time, records []attendance.DailyRecord, companyID string) error {
	if err := s.RecordRepository.ReplaceRange(ctx, employeeID, start, end, records, companyID); err != nil {
		return fmt.Errorf("%w: %s", attendance.ErrRecordsNotPersisted, err)
	}
	return nil
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

func parsePeriod(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, attendance.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, attendance.ErrInvalidDateRange
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, attendance.ErrInvalidDateRange
	}
	if int(end.Sub(start).Hours()/24)+1 > maxRangeDays {
		return time.Time{}, time.Time{}, attendance.ErrRangeTooLarge
	}
	return start, end, nil
}

func effectiveConfig(override *attendance.RuleConfiguration) attendance.RuleConfiguration {
	if override != nil {
		return *override
	}
	return attendance.DefaultRuleConfiguration()
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func toRecordResponse(rec attendance.DailyRecord) attendance.DailyRecordResponse {
	return attendance.DailyRecordResponse{
		Date:            attendance.DateKey(rec.Date),
		DayOfWeek:       rec.DayOfWeek,
		Status:          string(rec.Status),
		OriginalStatus:  string(rec.OriginalStatus),
		InTime:          timePtrToString(rec.InTime),
		OutTime:         timePtrToString(rec.OutTime),
		WorkingHours:    rec.WorkingHours.StringFixed(2),
		LateMinutes:     rec.LateMinutes,
		EarlyOutMinutes: rec.EarlyOutMinutes,
		OvertimeHours:   rec.OvertimeHours.StringFixed(2),
		BreakMinutes:    rec.BreakMinutes,
		ShiftName:       rec.ShiftName,
		ShiftSource:     string(rec.ShiftSource),
		HolidayName:     rec.HolidayName,
		IsWeekend:       rec.IsWeekend,

		ConvertedFromLate:            rec.ConvertedFromLate,
		ConvertedFromMinimumHours:    rec.ConvertedFromMinimumHours,
		ConvertedToHalfDay:           rec.ConvertedToHalfDay,
		ConvertedFromIncompletePunch: rec.ConvertedFromIncompletePunch,
		ExcessiveWorkingHours:        rec.ExcessiveWorkingHours,
		TerminationRisk:              rec.TerminationRisk,
		ExcessiveEarlyOut:            rec.ExcessiveEarlyOut,

		Reason:     rec.Reason,
		FlagReason: rec.FlagReason,
	}
}

func toSummaryResponse(sum attendance.Summary) attendance.SummaryResponse {
	return attendance.SummaryResponse{
		TotalDays:   sum.TotalDays,
		PresentDays: sum.PresentDays,
		AbsentDays:  sum.AbsentDays,
		LateDays:    sum.LateDays,
		LeaveDays:   sum.LeaveDays,
		HolidayDays: sum.HolidayDays,
		HalfDays:    sum.HalfDays,
		WorkingDays: sum.WorkingDays,

		TotalWorkingHours:  sum.TotalWorkingHours.StringFixed(2),
		TotalOvertimeHours: sum.TotalOvertimeHours.StringFixed(2),
		TotalLateMinutes:   sum.TotalLateMinutes,
		TotalEarlyOutMins:  sum.TotalEarlyOutMins,
		TotalBreakMinutes:  sum.TotalBreakMinutes,

		AttendancePct:     sum.AttendancePct,
		PunctualityPct:    sum.PunctualityPct,
		AverageDailyHours: sum.AverageDailyHours.StringFixed(2),
	}
}

func toReportResponse(emp employee.Employee, startDate, endDate string, result RunResult) attendance.ReportResponse {
	records := make([]attendance.DailyRecordResponse, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, toRecordResponse(rec))
	}

	sources := make(map[string]int, len(result.SourceCounts))
	for src, count := range result.SourceCounts {
		sources[string(src)] = count
	}

	flagged := make([]attendance.FlaggedRecordResponse, 0, len(result.Flagged))
	for _, f := range result.Flagged {
		flagged = append(flagged, attendance.FlaggedRecordResponse{
			Date:  attendance.DateKey(f.Date),
			Type:  string(f.Type),
			Count: f.Count,
		})
	}

	return attendance.ReportResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		StartDate:    startDate,
		EndDate:      endDate,
		Records:      records,
		Summary:      toSummaryResponse(result.Summary),
		ShiftSources: sources,
		Flagged:      flagged,
	}
}
