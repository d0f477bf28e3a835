package schedule

import (
	"github.com/workdeskhq/workdesk-backend/internal/pkg/civiltime"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/validator"
)

type CreateScheduleRequest struct {
	WorkerID  string `json:"worker_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
	Active    *bool  `json:"active"`
}

func (r CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "is required"})
	}
	if _, err := civiltime.NormalizeDayOfWeek(r.DayOfWeek); err != nil {
		errs = append(errs, validator.ValidationError{Field: "day_of_week", Message: "must be 0 (Sunday) through 6 (Saturday)"})
	}
	if _, err := civiltime.ParseTimeOfDay(r.StartTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be an HH:MM time"})
	}
	if _, err := civiltime.ParseTimeOfDay(r.EndTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be an HH:MM time"})
	}
	if _, err := civiltime.LoadLocation(r.Timezone); err != nil {
		errs = append(errs, validator.ValidationError{Field: "timezone", Message: "must be a valid IANA timezone"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateScheduleRequest struct {
	ID        string  `json:"-"`
	DayOfWeek *int    `json:"day_of_week"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Timezone  *string `json:"timezone"`
	Active    *bool   `json:"active"`
}

func (r UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.DayOfWeek != nil {
		if _, err := civiltime.NormalizeDayOfWeek(*r.DayOfWeek); err != nil {
			errs = append(errs, validator.ValidationError{Field: "day_of_week", Message: "must be 0 (Sunday) through 6 (Saturday)"})
		}
	}
	if r.StartTime != nil {
		if _, err := civiltime.ParseTimeOfDay(*r.StartTime); err != nil {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be an HH:MM time"})
		}
	}
	if r.EndTime != nil {
		if _, err := civiltime.ParseTimeOfDay(*r.EndTime); err != nil {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be an HH:MM time"})
		}
	}
	if r.Timezone != nil {
		if _, err := civiltime.LoadLocation(*r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{Field: "timezone", Message: "must be a valid IANA timezone"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleResponse struct {
	ID         string  `json:"id"`
	WorkerID   string  `json:"worker_id"`
	WorkerName *string `json:"worker_name,omitempty"`
	DayOfWeek  int     `json:"day_of_week"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Timezone   string  `json:"timezone"`
	Overnight  bool    `json:"overnight"`
	Active     bool    `json:"active"`
}

// ToResponse maps a schedule row to its API shape.
func ToResponse(s ShiftSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         s.ID,
		WorkerID:   s.WorkerID,
		WorkerName: s.WorkerName,
		DayOfWeek:  s.DayOfWeek,
		StartTime:  s.StartTime.String(),
		EndTime:    s.EndTime.String(),
		Timezone:   s.Timezone,
		Overnight:  s.IsOvernight(),
		Active:     s.Active,
	}
}
