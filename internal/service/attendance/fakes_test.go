package attendance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/domain/incident"
	"github.com/workdeskhq/workdesk-backend/internal/domain/presence"
	"github.com/workdeskhq/workdesk-backend/internal/domain/schedule"
	"github.com/workdeskhq/workdesk-backend/internal/domain/worker"
)

// In-memory repositories so the engine runs against fixed clocks and fixed
// data with no store behind it.

type fakeWorkerRepo struct {
	workers []worker.Worker
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) GetByEmail(_ context.Context, email string) (worker.Worker, error) {
	for _, w := range f.workers {
		if strings.EqualFold(w.Email, email) {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) ListActive(ctx context.Context) ([]worker.Worker, error) {
	return f.ListActiveByIDs(ctx, nil)
}

func (f *fakeWorkerRepo) ListActiveByIDs(_ context.Context, ids []string) ([]worker.Worker, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var out []worker.Worker
	for _, w := range f.workers {
		if !w.Active {
			continue
		}
		if len(ids) > 0 && !wanted[w.ID] {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

type fakeScheduleRepo struct {
	schedules []schedule.ShiftSchedule
}

func (f *fakeScheduleRepo) Create(_ context.Context, s schedule.ShiftSchedule) (schedule.ShiftSchedule, error) {
	s.ID = fmt.Sprintf("sched-%d", len(f.schedules)+1)
	f.schedules = append(f.schedules, s)
	return s, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id string) (schedule.ShiftSchedule, error) {
	for _, s := range f.schedules {
		if s.ID == id {
			return s, nil
		}
	}
	return schedule.ShiftSchedule{}, schedule.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) Update(_ context.Context, s schedule.ShiftSchedule) error {
	for i := range f.schedules {
		if f.schedules[i].ID == s.ID {
			f.schedules[i] = s
			return nil
		}
	}
	return schedule.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id string) error {
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return nil
		}
	}
	return schedule.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) ListActive(ctx context.Context) ([]schedule.ShiftSchedule, error) {
	return f.ListActiveByWorkers(ctx, nil)
}

func (f *fakeScheduleRepo) ListActiveByWorker(ctx context.Context, workerID string) ([]schedule.ShiftSchedule, error) {
	return f.ListActiveByWorkers(ctx, []string{workerID})
}

func (f *fakeScheduleRepo) ListActiveByWorkers(_ context.Context, workerIDs []string) ([]schedule.ShiftSchedule, error) {
	wanted := make(map[string]bool, len(workerIDs))
	for _, id := range workerIDs {
		wanted[id] = true
	}

	var out []schedule.ShiftSchedule
	for _, s := range f.schedules {
		if !s.Active {
			continue
		}
		if len(workerIDs) > 0 && !wanted[s.WorkerID] {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeScheduleRepo) List(_ context.Context, workerID *string) ([]schedule.ShiftSchedule, error) {
	var out []schedule.ShiftSchedule
	for _, s := range f.schedules {
		if workerID != nil && s.WorkerID != *workerID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeEventRepo struct {
	events []presence.Event
}

func (f *fakeEventRepo) Append(_ context.Context, e presence.Event) (presence.Event, error) {
	e.ID = fmt.Sprintf("event-%d", len(f.events)+1)
	e.CreatedAt = time.Now()
	f.events = append(f.events, e)
	return e, nil
}

// sorted returns a copy in replay order: at ascending, insertion order on
// ties, mirroring the store's ORDER BY.
func (f *fakeEventRepo) sorted() []presence.Event {
	out := make([]presence.Event, len(f.events))
	copy(out, f.events)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

func (f *fakeEventRepo) ListByWorkerBetween(_ context.Context, workerID string, from, to time.Time) ([]presence.Event, error) {
	var out []presence.Event
	for _, e := range f.sorted() {
		if e.WorkerID == workerID && !e.At.Before(from) && e.At.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByWorkersBetween(_ context.Context, workerIDs []string, from, to time.Time) (map[string][]presence.Event, error) {
	wanted := make(map[string]bool, len(workerIDs))
	for _, id := range workerIDs {
		wanted[id] = true
	}

	out := make(map[string][]presence.Event)
	for _, e := range f.sorted() {
		if len(workerIDs) > 0 && !wanted[e.WorkerID] {
			continue
		}
		if !e.At.Before(from) && e.At.Before(to) {
			out[e.WorkerID] = append(out[e.WorkerID], e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) FirstContactBetween(_ context.Context, workerID string, from, to time.Time) (*presence.Event, error) {
	for _, e := range f.sorted() {
		if e.WorkerID != workerID || !e.Kind.IsContact() {
			continue
		}
		if !e.At.Before(from) && !e.At.After(to) {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) LastEventsUpTo(_ context.Context, workerIDs []string, until time.Time, lookback time.Duration) (map[string][]presence.Event, error) {
	wanted := make(map[string]bool, len(workerIDs))
	for _, id := range workerIDs {
		wanted[id] = true
	}

	from := until.Add(-lookback)
	out := make(map[string][]presence.Event)
	for _, e := range f.sorted() {
		if len(workerIDs) > 0 && !wanted[e.WorkerID] {
			continue
		}
		if e.At.After(from) && !e.At.After(until) {
			out[e.WorkerID] = append(out[e.WorkerID], e)
		}
	}
	return out, nil
}

type fakeIncidentRepo struct {
	incidents []incident.Incident
}

func incidentKey(inc incident.Incident) string {
	return strings.Join([]string{inc.WorkerID, inc.MonthKey, inc.Kind, inc.Type, inc.ScheduleID, inc.Date}, "|")
}

func (f *fakeIncidentRepo) CreateIfAbsent(_ context.Context, inc incident.Incident) (bool, error) {
	for _, existing := range f.incidents {
		if incidentKey(existing) == incidentKey(inc) {
			return false, nil
		}
	}
	inc.ID = fmt.Sprintf("incident-%d", len(f.incidents)+1)
	inc.CreatedAt = time.Now()
	f.incidents = append(f.incidents, inc)
	return true, nil
}

func (f *fakeIncidentRepo) List(_ context.Context, filter incident.ListFilter) ([]incident.Incident, error) {
	var out []incident.Incident
	for _, inc := range f.incidents {
		if filter.WorkerID != nil && inc.WorkerID != *filter.WorkerID {
			continue
		}
		if filter.MonthKey != nil && inc.MonthKey != *filter.MonthKey {
			continue
		}
		if filter.Type != nil && inc.Type != *filter.Type {
			continue
		}
		out = append(out, inc)
	}
	return out, nil
}
