package shift

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workclock/attendance-engine-go/internal/domain/shift"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository) shift.Service {
	return &ShiftServiceImpl{ShiftRepository: shiftRepo}
}

// ListDefinitions implements shift.Service.
func (s *ShiftServiceImpl) ListDefinitions(ctx context.Context) ([]shift.DefinitionResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return nil, fmt.Errorf("company_id claim is missing or invalid")
	}

	definitions, err := s.ShiftRepository.ListDefinitions(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift definitions: %w", err)
	}

	out := make([]shift.DefinitionResponse, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, shift.DefinitionResponse{
			ID:           def.ID,
			Name:         def.Name,
			StartTime:    def.StartTime,
			EndTime:      def.EndTime,
			BreakMinutes: def.BreakMinutes,
			GraceMinutes: def.GraceMinutes,
			IsOvernight:  def.IsOvernight(),
		})
	}
	return out, nil
}
