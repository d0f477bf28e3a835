package attendance

import (
	"context"
	"time"
)

// AttendanceService is the attendance & shift accounting engine. Every
// operation takes its reference instant explicitly; nothing in the engine
// reads the wall clock.
type AttendanceService interface {
	// ExpectedNow resolves who should be inside an active shift at the
	// reference instant, overnight shifts included.
	ExpectedNow(ctx context.Context, at time.Time) ([]ExpectedNowItem, error)

	// RecordEvent ingests one presence event. Out-of-shift events are
	// recorded, never rejected.
	RecordEvent(ctx context.Context, req RecordEventRequest, at time.Time) (RecordEventResponse, error)

	// CurrentPresence returns every active worker's live presence, derived
	// from the cache when available and replayed from the event log when not.
	CurrentPresence(ctx context.Context, at time.Time) ([]PresenceItem, error)

	// Aggregate computes worked/break/bathroom/expected minute buckets over a
	// date range, keyed by day, ISO week, or month.
	Aggregate(ctx context.Context, req ReportRequest, now time.Time) ([]BucketResponse, error)

	// RunChecks performs the idempotent lateness/absence sweep for the
	// current civil day in the reporting timezone.
	RunChecks(ctx context.Context, now time.Time) (RunChecksResponse, error)
}
