package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/config"
	"github.com/workdeskhq/workdesk-backend/internal/domain/attendance"
	"github.com/workdeskhq/workdesk-backend/internal/domain/incident"
	"github.com/workdeskhq/workdesk-backend/internal/domain/presence"
	"github.com/workdeskhq/workdesk-backend/internal/domain/schedule"
	"github.com/workdeskhq/workdesk-backend/internal/domain/worker"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/cache"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/civiltime"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/sse"
)

// PresenceTopic is the SSE topic every live dashboard session subscribes to.
const PresenceTopic = "presence"

// replayLookback bounds how far back live state replay reads the event log.
// Two days covers any overnight shift plus pre-midnight context.
const replayLookback = 48 * time.Hour

type AttendanceServiceImpl struct {
	worker.WorkerRepository
	schedule.ShiftScheduleRepository
	presence.EventRepository
	incident.IncidentRepository
	presenceCache *cache.PresenceCache
	hub           *sse.Hub
	cfg           config.AttendanceConfig
	reportLoc     *time.Location
}

func NewAttendanceService(
	workerRepo worker.WorkerRepository,
	scheduleRepo schedule.ShiftScheduleRepository,
	eventRepo presence.EventRepository,
	incidentRepo incident.IncidentRepository,
	presenceCache *cache.PresenceCache,
	hub *sse.Hub,
	cfg config.AttendanceConfig,
) (attendance.AttendanceService, error) {
	reportLoc, err := civiltime.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		return nil, err
	}

	return &AttendanceServiceImpl{
		WorkerRepository:        workerRepo,
		ShiftScheduleRepository: scheduleRepo,
		EventRepository:         eventRepo,
		IncidentRepository:      incidentRepo,
		presenceCache:           presenceCache,
		hub:                     hub,
		cfg:                     cfg,
		reportLoc:               reportLoc,
	}, nil
}

// ExpectedNow implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExpectedNow(ctx context.Context, at time.Time) ([]attendance.ExpectedNowItem, error) {
	schedules, err := s.ShiftScheduleRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var active []schedule.Occurrence
	workerIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, occ := range resolveOccurrences(schedules, at, s.reportLoc) {
		if !isActiveNow(occ, at) {
			continue
		}
		active = append(active, occ)
		if !seen[occ.WorkerID] {
			seen[occ.WorkerID] = true
			workerIDs = append(workerIDs, occ.WorkerID)
		}
	}
	if len(active) == 0 {
		return []attendance.ExpectedNowItem{}, nil
	}

	workers, err := s.WorkerRepository.ListActiveByIDs(ctx, workerIDs)
	if err != nil {
		return nil, err
	}
	workersByID := make(map[string]worker.Worker, len(workers))
	for _, w := range workers {
		workersByID[w.ID] = w
	}

	items := make([]attendance.ExpectedNowItem, 0, len(active))
	for _, occ := range active {
		w, ok := workersByID[occ.WorkerID]
		if !ok {
			continue
		}
		items = append(items, attendance.ExpectedNowItem{
			ScheduleID: occ.ScheduleID,
			WorkerID:   occ.WorkerID,
			WorkerName: w.FullName,
			Role:       string(w.Role),
			Start:      occ.Start,
			End:        occ.End,
			Timezone:   occ.Timezone,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].WorkerName != items[j].WorkerName {
			return items[i].WorkerName < items[j].WorkerName
		}
		return items[i].Start.Before(items[j].Start)
	})
	return items, nil
}

// RecordEvent implements attendance.AttendanceService. Events are always
// accepted, in or out of shift; the active occurrence (widened by the edge
// grace window) is attached when one matches.
func (s *AttendanceServiceImpl) RecordEvent(ctx context.Context, req attendance.RecordEventRequest, at time.Time) (attendance.RecordEventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordEventResponse{}, err
	}

	eventAt := at
	if !req.At.IsZero() {
		eventAt = req.At
	}

	kind, err := presence.DecodeKind(req.EventType, req.Meta.Action, req.Meta.Phase)
	if err != nil {
		return attendance.RecordEventResponse{}, err
	}

	w, err := s.WorkerRepository.GetByID(ctx, req.WorkerID)
	if err != nil {
		return attendance.RecordEventResponse{}, err
	}
	if !w.Active {
		return attendance.RecordEventResponse{}, worker.ErrWorkerInactive
	}

	schedules, err := s.ShiftScheduleRepository.ListActiveByWorker(ctx, req.WorkerID)
	if err != nil {
		return attendance.RecordEventResponse{}, err
	}
	resolvedScheduleID := s.resolveScheduleID(schedules, eventAt)

	event := presence.Event{
		WorkerID:   req.WorkerID,
		Kind:       kind,
		At:         eventAt,
		ScheduleID: resolvedScheduleID,
	}
	if _, err := s.EventRepository.Append(ctx, event); err != nil {
		return attendance.RecordEventResponse{}, err
	}

	recent, err := s.EventRepository.LastEventsUpTo(ctx, []string{req.WorkerID}, eventAt, replayLookback)
	if err != nil {
		return attendance.RecordEventResponse{}, err
	}
	state := replay(req.WorkerID, recent[req.WorkerID])

	cacheUpdated := s.presenceCache.SetState(ctx, state)
	if kind.IsContact() {
		s.presenceCache.TouchHeartbeat(ctx, req.WorkerID, eventAt)
	}

	stateResp := toStateResponse(state)
	if s.hub != nil {
		s.hub.Publish(PresenceTopic, sse.Event{
			Topic: PresenceTopic,
			Event: "presence_update",
			Data:  stateResp,
		})
	}

	return attendance.RecordEventResponse{
		Accepted:           true,
		ResolvedScheduleID: resolvedScheduleID,
		State:              stateResp,
		CacheUpdated:       cacheUpdated,
	}, nil
}

// resolveScheduleID picks the occurrence active at the event instant,
// preferring an exact hit over an edge-grace hit.
func (s *AttendanceServiceImpl) resolveScheduleID(schedules []schedule.ShiftSchedule, at time.Time) *string {
	occs := resolveOccurrences(schedules, at, s.reportLoc)

	grace := time.Duration(s.cfg.EdgeGraceMinutes) * time.Minute
	var graceHit *string
	for i := range occs {
		if isActiveNow(occs[i], at) {
			return &occs[i].ScheduleID
		}
		if graceHit == nil && isWithinEdgeGrace(occs[i], at, grace) {
			graceHit = &occs[i].ScheduleID
		}
	}
	return graceHit
}

// CurrentPresence implements attendance.AttendanceService. The cached
// projection serves each worker when present; everyone else is replayed from
// the event log. Real online additionally requires a fresh contact on top of
// the persisted online flag, since a closed browser emits no offline event.
func (s *AttendanceServiceImpl) CurrentPresence(ctx context.Context, at time.Time) ([]attendance.PresenceItem, error) {
	workers, err := s.WorkerRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	workerIDs := make([]string, 0, len(workers))
	for _, w := range workers {
		workerIDs = append(workerIDs, w.ID)
	}

	recent, err := s.EventRepository.LastEventsUpTo(ctx, workerIDs, at, replayLookback)
	if err != nil {
		return nil, err
	}

	items := make([]attendance.PresenceItem, 0, len(workers))
	for _, w := range workers {
		state := s.presenceCache.GetState(ctx, w.ID)
		if state == nil {
			replayed := replay(w.ID, recent[w.ID])
			state = &replayed
		}

		lastHeartbeat := s.presenceCache.LastHeartbeat(ctx, w.ID)
		if lastHeartbeat == nil {
			lastHeartbeat = lastContactAt(recent[w.ID])
		}

		realOnline := state.IsOnline &&
			lastHeartbeat != nil &&
			at.Sub(*lastHeartbeat) <= s.cfg.HeartbeatStaleFor

		items = append(items, attendance.PresenceItem{
			WorkerID:      w.ID,
			WorkerName:    w.FullName,
			Status:        string(state.Status),
			IsOnline:      state.IsOnline,
			RealOnline:    realOnline,
			LastHeartbeat: lastHeartbeat,
		})
	}

	return items, nil
}

func lastContactAt(events []presence.Event) *time.Time {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind.IsContact() {
			at := events[i].At
			return &at
		}
	}
	return nil
}

// Aggregate implements attendance.AttendanceService. Two independent passes
// over the same range: observed minutes replayed from the event log, expected
// minutes resolved from the schedule table. Output ordering is deterministic:
// bucket key ascending, then worker display name.
func (s *AttendanceServiceImpl) Aggregate(ctx context.Context, req attendance.ReportRequest, now time.Time) ([]attendance.BucketResponse, error) {
	if req.To.Before(req.From) {
		return nil, attendance.ErrInvalidDateRange
	}

	workers, err := s.WorkerRepository.ListActiveByIDs(ctx, req.WorkerIDs)
	if err != nil {
		return nil, err
	}

	workerIDs := make([]string, 0, len(workers))
	for _, w := range workers {
		workerIDs = append(workerIDs, w.ID)
	}

	schedules, err := s.ShiftScheduleRepository.ListActiveByWorkers(ctx, workerIDs)
	if err != nil {
		return nil, err
	}
	schedulesByWorker := make(map[string][]schedule.ShiftSchedule)
	for _, sch := range schedules {
		schedulesByWorker[sch.WorkerID] = append(schedulesByWorker[sch.WorkerID], sch)
	}

	rangeStart := civiltime.DayStart(req.From, s.reportLoc)
	rangeEnd := civiltime.NextDayStart(req.To, s.reportLoc)

	// The terminal replay interval runs up to now when the range includes
	// the present.
	until := rangeEnd
	if now.Before(until) {
		until = now
	}
	if until.Before(rangeStart) {
		until = rangeStart
	}

	// Events start two days early so the replay enters the range carrying
	// the correct state; only overlap with the range itself is counted.
	eventsFrom := civiltime.DayStart(req.From.AddDays(-2), s.reportLoc)
	eventsByWorker, err := s.EventRepository.ListByWorkersBetween(ctx, workerIDs, eventsFrom, until)
	if err != nil {
		return nil, err
	}

	var out []attendance.BucketResponse
	for _, w := range workers {
		acc := make(map[string]*bucketTotals)
		observedTotals(w.ID, eventsByWorker[w.ID], rangeStart, until, s.reportLoc, req.Granularity, acc)
		expectedTotals(schedulesByWorker[w.ID], req.From, req.To, s.reportLoc, req.Granularity, acc)

		for key, totals := range acc {
			out = append(out, attendance.BucketResponse{
				WorkerID:        w.ID,
				WorkerName:      w.FullName,
				BucketKey:       key,
				WorkedMinutes:   totals.Worked,
				BreakMinutes:    totals.Break,
				BathroomMinutes: totals.Bathroom,
				ExpectedMinutes: totals.Expected,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].BucketKey != out[j].BucketKey {
			return out[i].BucketKey < out[j].BucketKey
		}
		return out[i].WorkerName < out[j].WorkerName
	})
	if out == nil {
		out = []attendance.BucketResponse{}
	}
	return out, nil
}

func toStateResponse(st presence.State) attendance.StateResponse {
	return attendance.StateResponse{
		WorkerID:      st.WorkerID,
		IsOnline:      st.IsOnline,
		Status:        string(st.Status),
		EffectiveFrom: st.EffectiveFrom,
	}
}
