package schedule

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workdeskhq/workdesk-backend/internal/domain/schedule"
	"github.com/workdeskhq/workdesk-backend/internal/domain/worker"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/validator"
)

type fakeWorkerRepo struct {
	workers map[string]worker.Worker
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (worker.Worker, error) {
	w, ok := f.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) GetByEmail(_ context.Context, email string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.Email == email {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) ListActive(ctx context.Context) ([]worker.Worker, error) {
	return f.ListActiveByIDs(ctx, nil)
}

func (f *fakeWorkerRepo) ListActiveByIDs(_ context.Context, _ []string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range f.workers {
		if w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeScheduleRepo struct {
	rows map[string]schedule.ShiftSchedule
	seq  int
}

func (f *fakeScheduleRepo) Create(_ context.Context, s schedule.ShiftSchedule) (schedule.ShiftSchedule, error) {
	f.seq++
	s.ID = fmt.Sprintf("sched-%d", f.seq)
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id string) (schedule.ShiftSchedule, error) {
	s, ok := f.rows[id]
	if !ok {
		return schedule.ShiftSchedule{}, schedule.ErrScheduleNotFound
	}
	return s, nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, s schedule.ShiftSchedule) error {
	if _, ok := f.rows[s.ID]; !ok {
		return schedule.ErrScheduleNotFound
	}
	f.rows[s.ID] = s
	return nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return schedule.ErrScheduleNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeScheduleRepo) ListActive(ctx context.Context) ([]schedule.ShiftSchedule, error) {
	return f.ListActiveByWorkers(ctx, nil)
}

func (f *fakeScheduleRepo) ListActiveByWorker(ctx context.Context, workerID string) ([]schedule.ShiftSchedule, error) {
	return f.ListActiveByWorkers(ctx, []string{workerID})
}

func (f *fakeScheduleRepo) ListActiveByWorkers(_ context.Context, workerIDs []string) ([]schedule.ShiftSchedule, error) {
	var out []schedule.ShiftSchedule
	for _, s := range f.rows {
		if !s.Active {
			continue
		}
		if len(workerIDs) > 0 {
			match := false
			for _, id := range workerIDs {
				if id == s.WorkerID {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeScheduleRepo) List(_ context.Context, workerID *string) ([]schedule.ShiftSchedule, error) {
	var out []schedule.ShiftSchedule
	for _, s := range f.rows {
		if workerID != nil && s.WorkerID != *workerID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func newService(t *testing.T) (schedule.ScheduleService, *fakeScheduleRepo) {
	t.Helper()
	repo := &fakeScheduleRepo{rows: map[string]schedule.ShiftSchedule{}}
	workers := &fakeWorkerRepo{workers: map[string]worker.Worker{
		"w1": {ID: "w1", FullName: "Ana Torres", Email: "ana@example.com", Role: worker.RoleAgent, Active: true},
	}}
	return NewScheduleService(repo, workers), repo
}

func TestCreate_RegularShift(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), schedule.CreateScheduleRequest{
		WorkerID:  "w1",
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:00",
		Timezone:  "Europe/Madrid",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.DayOfWeek)
	assert.Equal(t, "09:00", created.StartTime)
	assert.Equal(t, "17:00", created.EndTime)
	assert.False(t, created.Overnight)
	assert.True(t, created.Active, "active defaults to true")
}

func TestCreate_OvernightShiftFlagged(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), schedule.CreateScheduleRequest{
		WorkerID:  "w1",
		DayOfWeek: 1,
		StartTime: "22:00",
		EndTime:   "06:00",
		Timezone:  "Europe/Madrid",
	})
	require.NoError(t, err)
	assert.True(t, created.Overnight)
}

func TestCreate_LegacySundaySevenNormalized(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), schedule.CreateScheduleRequest{
		WorkerID:  "w1",
		DayOfWeek: 7,
		StartTime: "09:00",
		EndTime:   "17:00",
		Timezone:  "Europe/Madrid",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.DayOfWeek)
}

func TestCreate_UnknownWorker(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), schedule.CreateScheduleRequest{
		WorkerID:  "ghost",
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:00",
		Timezone:  "Europe/Madrid",
	})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestCreate_ValidationErrors(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), schedule.CreateScheduleRequest{
		WorkerID:  "w1",
		DayOfWeek: 9,
		StartTime: "25:99",
		EndTime:   "17:00",
		Timezone:  "Mars/Olympus_Mons",
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "day_of_week")
	assert.Contains(t, fields, "start_time")
	assert.Contains(t, fields, "timezone")
}

func TestUpdate_PartialFieldsOnly(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), schedule.CreateScheduleRequest{
		WorkerID:  "w1",
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:00",
		Timezone:  "Europe/Madrid",
	})
	require.NoError(t, err)

	newEnd := "18:30"
	updated, err := svc.Update(context.Background(), schedule.UpdateScheduleRequest{
		ID:      created.ID,
		EndTime: &newEnd,
	})
	require.NoError(t, err)

	assert.Equal(t, "18:30", updated.EndTime)
	assert.Equal(t, "09:00", updated.StartTime, "untouched fields keep their values")
	assert.Equal(t, 1, updated.DayOfWeek)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Update(context.Background(), schedule.UpdateScheduleRequest{ID: "missing"})
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}

func TestDelete_RemovesRow(t *testing.T) {
	svc, repo := newService(t)

	created, err := svc.Create(context.Background(), schedule.CreateScheduleRequest{
		WorkerID:  "w1",
		DayOfWeek: 2,
		StartTime: "09:00",
		EndTime:   "17:00",
		Timezone:  "Europe/Madrid",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.rows)

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}

func TestList_FiltersByWorker(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), schedule.CreateScheduleRequest{
		WorkerID:  "w1",
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:00",
		Timezone:  "Europe/Madrid",
	})
	require.NoError(t, err)

	w1 := "w1"
	rows, err := svc.List(context.Background(), &w1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	nobody := "w2"
	rows, err = svc.List(context.Background(), &nobody)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
