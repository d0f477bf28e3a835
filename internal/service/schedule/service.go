package schedule

import (
	"context"
	"fmt"

	"github.com/workdeskhq/workdesk-backend/internal/domain/schedule"
	"github.com/workdeskhq/workdesk-backend/internal/domain/worker"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/civiltime"
)

type ScheduleServiceImpl struct {
	schedule.ShiftScheduleRepository
	worker.WorkerRepository
}

func NewScheduleService(scheduleRepo schedule.ShiftScheduleRepository, workerRepo worker.WorkerRepository) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		ShiftScheduleRepository: scheduleRepo,
		WorkerRepository:        workerRepo,
	}
}

// Create implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Create(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	if _, err := s.WorkerRepository.GetByID(ctx, req.WorkerID); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	dow, err := civiltime.NormalizeDayOfWeek(req.DayOfWeek)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("%w: %v", schedule.ErrInvalidDayOfWeek, err)
	}
	start, err := civiltime.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("%w: %v", schedule.ErrInvalidTimeOfDay, err)
	}
	end, err := civiltime.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("%w: %v", schedule.ErrInvalidTimeOfDay, err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	created, err := s.ShiftScheduleRepository.Create(ctx, schedule.ShiftSchedule{
		WorkerID:  req.WorkerID,
		DayOfWeek: dow,
		StartTime: start,
		EndTime:   end,
		Timezone:  req.Timezone,
		Active:    active,
	})
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	return schedule.ToResponse(created), nil
}

// Update implements schedule.ScheduleService. Partial update: only the
// fields present in the request change.
func (s *ScheduleServiceImpl) Update(ctx context.Context, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	existing, err := s.ShiftScheduleRepository.GetByID(ctx, req.ID)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	if req.DayOfWeek != nil {
		dow, err := civiltime.NormalizeDayOfWeek(*req.DayOfWeek)
		if err != nil {
			return schedule.ScheduleResponse{}, fmt.Errorf("%w: %v", schedule.ErrInvalidDayOfWeek, err)
		}
		existing.DayOfWeek = dow
	}
	if req.StartTime != nil {
		start, err := civiltime.ParseTimeOfDay(*req.StartTime)
		if err != nil {
			return schedule.ScheduleResponse{}, fmt.Errorf("%w: %v", schedule.ErrInvalidTimeOfDay, err)
		}
		existing.StartTime = start
	}
	if req.EndTime != nil {
		end, err := civiltime.ParseTimeOfDay(*req.EndTime)
		if err != nil {
			return schedule.ScheduleResponse{}, fmt.Errorf("%w: %v", schedule.ErrInvalidTimeOfDay, err)
		}
		existing.EndTime = end
	}
	if req.Timezone != nil {
		existing.Timezone = *req.Timezone
	}
	if req.Active != nil {
		existing.Active = *req.Active
	}

	if err := s.ShiftScheduleRepository.Update(ctx, existing); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	return schedule.ToResponse(existing), nil
}

// Get implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Get(ctx context.Context, id string) (schedule.ScheduleResponse, error) {
	found, err := s.ShiftScheduleRepository.GetByID(ctx, id)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	return schedule.ToResponse(found), nil
}

// List implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) List(ctx context.Context, workerID *string) ([]schedule.ScheduleResponse, error) {
	rows, err := s.ShiftScheduleRepository.List(ctx, workerID)
	if err != nil {
		return nil, err
	}

	out := make([]schedule.ScheduleResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, schedule.ToResponse(row))
	}
	return out, nil
}

// Delete implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Delete(ctx context.Context, id string) error {
	return s.ShiftScheduleRepository.Delete(ctx, id)
}
