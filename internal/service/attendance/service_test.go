package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workdeskhq/workdesk-backend/internal/domain/attendance"
	"github.com/workdeskhq/workdesk-backend/internal/domain/presence"
	"github.com/workdeskhq/workdesk-backend/internal/domain/schedule"
	"github.com/workdeskhq/workdesk-backend/internal/domain/worker"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/civiltime"
)

func TestExpectedNow_OvernightShiftAfterMidnight(t *testing.T) {
	loc := madrid(t)
	ctx := context.Background()

	f := newEngine(t, []worker.Worker{ana()}, []schedule.ShiftSchedule{mondayShift(tod(22, 0), tod(6, 0))})

	at := time.Date(2026, 3, 10, 2, 0, 0, 0, loc)
	items, err := f.svc.ExpectedNow(ctx, at)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "sched-1", items[0].ScheduleID)
	assert.Equal(t, "Ana Torres", items[0].WorkerName)
	assert.Equal(t, "agent", items[0].Role)
	assert.Equal(t, "Europe/Madrid", items[0].Timezone)
}

func TestExpectedNow_NobodyScheduled(t *testing.T) {
	loc := madrid(t)
	ctx := context.Background()

	f := newEngine(t, []worker.Worker{ana()}, []schedule.ShiftSchedule{mondayShift(tod(9, 0), tod(17, 0))})

	at := time.Date(2026, 3, 9, 20, 0, 0, 0, loc)
	items, err := f.svc.ExpectedNow(ctx, at)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRecordEvent_InShiftAnnotatesSchedule(t *testing.T) {
	loc := madrid(t)
	ctx := context.Background()

	f := newEngine(t, []worker.Worker{ana()}, []schedule.ShiftSchedule{mondayShift(tod(22, 0), tod(6, 0))})

	at := time.Date(2026, 3, 9, 22, 30, 0, 0, loc)
	res, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{
		WorkerID:  "w1",
		EventType: presence.WireOnline,
		Meta:      attendance.EventMeta{Action: presence.ActionCheckIn},
	}, at)
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	require.NotNil(t, res.ResolvedScheduleID)
	assert.Equal(t, "sched-1", *res.ResolvedScheduleID)
	assert.Equal(t, "working", res.State.Status)
	assert.True(t, res.State.IsOnline)
	assert.False(t, res.CacheUpdated)
}

func TestRecordEvent_OutOfShiftStillAccepted(t *testing.T) {
	loc := madrid(t)
	ctx := context.Background()

	f := newEngine(t, []worker.Worker{ana()}, []schedule.ShiftSchedule{mondayShift(tod(22, 0), tod(6, 0))})

	// Wednesday noon, nowhere near the Monday night shift.
	at := time.Date(2026, 3, 11, 12, 0, 0, 0, loc)
	res, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{
		WorkerID:  "w1",
		EventType: presence.WireOnline,
	}, at)
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Nil(t, res.ResolvedScheduleID)
}

func TestRecordEvent_EdgeGraceAttachesSchedule(t *testing.T) {
	loc := madrid(t)
	ctx := context.Background()

	f := newEngine(t, []worker.Worker{ana()}, []schedule.ShiftSchedule{mondayShift(tod(22, 0), tod(6, 0))})

	// Ten minutes before shift start, inside the 15-minute edge grace.
	at := time.Date(2026, 3, 9, 21, 50, 0, 0, loc)
	res, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{
		WorkerID:  "w1",
		EventType: presence.WireOnline,
	}, at)
	require.NoError(t, err)

	require.NotNil(t, res.ResolvedScheduleID)
	assert.Equal(t, "sched-1", *res.ResolvedScheduleID)
}

func TestRecordEvent_BreakFlow(t *testing.T) {
	loc := madrid(t)
	ctx := context.Background()

	f := newEngine(t, []worker.Worker{ana()}, []schedule.ShiftSchedule{mondayShift(tod(22, 0), tod(6, 0))})

	checkIn := time.Date(2026, 3, 9, 22, 0, 0, 0, loc)
	_, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{
		WorkerID:  "w1",
		EventType: presence.WireOnline,
	}, checkIn)
	require.NoError(t, err)

	res, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{
		WorkerID:  "w1",
		EventType: presence.WireOnline,
		Meta:      attendance.EventMeta{Action: presence.ActionBreak, Phase: presence.PhaseStart},
	}, checkIn.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "break", res.State.Status)
	assert.True(t, res.State.IsOnline)
}

func TestRecordEvent_UnknownKindRejected(t *testing.T) {
	ctx := context.Background()
	f := newEngine(t, []worker.Worker{ana()}, nil)

	_, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{
		WorkerID:  "w1",
		EventType: "mystery",
	}, time.Now())
	assert.Error(t, err)
}

func TestRecordEvent_UnknownWorkerRejected(t *testing.T) {
	ctx := context.Background()
	f := newEngine(t, []worker.Worker{ana()}, nil)

	_, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{
		WorkerID:  "ghost",
		EventType: presence.WireOnline,
	}, time.Now())
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestCurrentPresence_RealOnlineRequiresFreshHeartbeat(t *testing.T) {
	loc := madrid(t)
	ctx := context.Background()

	f := newEngine(t, []worker.Worker{ana()}, nil)

	checkIn := time.Date(2026, 3, 9, 22, 0, 0, 0, loc)
	_, err := f.events.Append(ctx, presence.Event{WorkerID: "w1", Kind: presence.KindCheckIn, At: checkIn})
	require.NoError(t, err)
	_, err = f.events.Append(ctx, presence.Event{WorkerID: "w1", Kind: presence.KindHeartbeat, At: checkIn.Add(30 * time.Minute)})
	require.NoError(t, err)

	// 30 seconds after the last heartbeat: really online.
	items, err := f.svc.CurrentPresence(ctx, checkIn.Add(30*time.Minute+30*time.Second))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsOnline)
	assert.True(t, items[0].RealOnline)
	assert.Equal(t, "working", items[0].Status)

	// Five minutes after the last heartbeat: the persisted flag still says
	// online, but liveness is gone.
	items, err = f.svc.CurrentPresence(ctx, checkIn.Add(35*time.Minute))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsOnline)
	assert.False(t, items[0].RealOnline)
}

func TestCurrentPresence_OfflineAfterCheckOut(t *testing.T) {
	loc := madrid(t)
	ctx := context.Background()

	f := newEngine(t, []worker.Worker{ana()}, nil)

	checkIn := time.Date(2026, 3, 9, 22, 0, 0, 0, loc)
	_, err := f.events.Append(ctx, presence.Event{WorkerID: "w1", Kind: presence.KindCheckIn, At: checkIn})
	require.NoError(t, err)
	_, err = f.events.Append(ctx, presence.Event{WorkerID: "w1", Kind: presence.KindCheckOut, At: checkIn.Add(time.Hour)})
	require.NoError(t, err)

	items, err := f.svc.CurrentPresence(ctx, checkIn.Add(time.Hour+time.Minute))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsOnline)
	assert.False(t, items[0].RealOnline)
	assert.Equal(t, "offline", items[0].Status)
}

func TestAggregate_OvernightReport(t *testing.T) {
	loc := madrid(t)
	ctx := context.Background()

	f := newEngine(t, []worker.Worker{ana()}, []schedule.ShiftSchedule{mondayShift(tod(22, 0), tod(6, 0))})

	_, err := f.events.Append(ctx, presence.Event{WorkerID: "w1", Kind: presence.KindCheckIn, At: time.Date(2026, 3, 9, 23, 0, 0, 0, loc)})
	require.NoError(t, err)
	_, err = f.events.Append(ctx, presence.Event{WorkerID: "w1", Kind: presence.KindCheckOut, At: time.Date(2026, 3, 10, 1, 0, 0, 0, loc)})
	require.NoError(t, err)

	now := time.Date(2026, 3, 12, 12, 0, 0, 0, loc)
	buckets, err := f.svc.Aggregate(ctx, attendance.ReportRequest{
		From:        civiltime.Date{Year: 2026, Month: 3, Day: 9},
		To:          civiltime.Date{Year: 2026, Month: 3, Day: 10},
		Granularity: civiltime.GranularityDay,
	}, now)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	// Deterministic ordering: bucket key ascending.
	assert.Equal(t, "2026-03-09", buckets[0].BucketKey)
	assert.Equal(t, 60, buckets[0].WorkedMinutes)
	assert.Equal(t, 120, buckets[0].ExpectedMinutes)

	assert.Equal(t, "2026-03-10", buckets[1].BucketKey)
	assert.Equal(t, 60, buckets[1].WorkedMinutes)
	assert.Equal(t, 360, buckets[1].ExpectedMinutes)
}

func TestAggregate_InvalidRange(t *testing.T) {
	ctx := context.Background()
	f := newEngine(t, []worker.Worker{ana()}, nil)

	_, err := f.svc.Aggregate(ctx, attendance.ReportRequest{
		From:        civiltime.Date{Year: 2026, Month: 3, Day: 10},
		To:          civiltime.Date{Year: 2026, Month: 3, Day: 9},
		Granularity: civiltime.GranularityDay,
	}, time.Now())
	assert.ErrorIs(t, err, attendance.ErrInvalidDateRange)
}
