package attendance

import (
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/domain/presence"
)

// nextState applies one event to a worker's presence state.
//
//	check_out       -> offline
//	heartbeat       -> unchanged if on break or in bathroom, else working
//	break start/end -> break / working
//	bathroom s/e    -> bathroom / working
//	check_in        -> working
//
// Every kind except check_out sets is_online.
func nextState(cur presence.State, e presence.Event) presence.State {
	next := cur
	next.EffectiveFrom = e.At

	switch e.Kind {
	case presence.KindCheckOut:
		next.IsOnline = false
		next.Status = presence.StatusOffline
		return next
	case presence.KindHeartbeat:
		next.IsOnline = true
		if cur.Status != presence.StatusBreak && cur.Status != presence.StatusBathroom {
			next.Status = presence.StatusWorking
		}
		return next
	case presence.KindBreakStart:
		next.IsOnline = true
		next.Status = presence.StatusBreak
		return next
	case presence.KindBathroomStart:
		next.IsOnline = true
		next.Status = presence.StatusBathroom
		return next
	case presence.KindCheckIn, presence.KindBreakEnd, presence.KindBathroomEnd:
		next.IsOnline = true
		next.Status = presence.StatusWorking
		return next
	}
	return next
}

// replay folds an ordered event list into a final state, starting from the
// no-events initial state. Events must already be sorted by at ascending with
// ties in insertion order; the store's queries guarantee that.
func replay(workerID string, events []presence.Event) presence.State {
	state := presence.InitialState(workerID)
	for _, e := range events {
		state = nextState(state, e)
	}
	return state
}

// statusInterval is one continuous span during which a worker held a single
// status. End is exclusive.
type statusInterval struct {
	Start    time.Time
	End      time.Time
	Status   presence.Status
	IsOnline bool
}

// replayIntervals converts an ordered event list into status intervals. The
// span between two consecutive events carries the first event's resulting
// status; the terminal span runs from the last event to until. Offline spans
// are included so callers can see gaps, but carry IsOnline=false and must
// never be attributed to any bucket.
func replayIntervals(workerID string, events []presence.Event, until time.Time) []statusInterval {
	if len(events) == 0 {
		return nil
	}

	var intervals []statusInterval
	state := presence.InitialState(workerID)
	for i, e := range events {
		state = nextState(state, e)

		end := until
		if i+1 < len(events) {
			end = events[i+1].At
		}
		if !end.After(e.At) {
			continue
		}
		intervals = append(intervals, statusInterval{
			Start:    e.At,
			End:      end,
			Status:   state.Status,
			IsOnline: state.IsOnline,
		})
	}
	return intervals
}
