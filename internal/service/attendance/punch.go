package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/employee"
)

type PunchServiceImpl struct {
	attendance.PunchRepository
	employee.EmployeeRepository
}

func NewPunchService(punchRepo attendance.PunchRepository, employeeRepo employee.EmployeeRepository) attendance.PunchService {
	return &PunchServiceImpl{
		PunchRepository:    punchRepo,
		EmployeeRepository: employeeRepo,
	}
}

// RecordPunch implements attendance.PunchService.
func (s *PunchServiceImpl) RecordPunch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.PunchResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.PunchResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		ts, err = time.Parse(time.RFC3339Nano, req.Timestamp)
		if err != nil {
			return attendance.PunchResponse{}, fmt.Errorf("failed to parse timestamp: %w", err)
		}
	}

	direction := attendance.PunchDirection(req.Direction)
	if direction == "" {
		direction = attendance.DirectionUnknown
	}

	punch := attendance.PunchEvent{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		Timestamp:  ts,
		Direction:  direction,
		DeviceID:   req.DeviceID,
	}

	stored, err := s.PunchRepository.Create(ctx, punch)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to store punch: %w", err)
	}

	return attendance.PunchResponse{
		ID:         stored.ID,
		EmployeeID: stored.EmployeeID,
		Timestamp:  stored.Timestamp.Format(time.RFC3339),
		Direction:  string(stored.Direction),
		DeviceID:   stored.DeviceID,
	}, nil
}
