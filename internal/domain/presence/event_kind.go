package presence

import "fmt"

// EventKind is the closed set of presence intents. The wire protocol encodes
// intent as a 3-value event_type plus free-form meta annotations; that
// encoding is decoded exactly once, here, so the state machine never matches
// on strings.
type EventKind string

const (
	KindCheckIn       EventKind = "check_in"
	KindCheckOut      EventKind = "check_out"
	KindBreakStart    EventKind = "break_start"
	KindBreakEnd      EventKind = "break_end"
	KindBathroomStart EventKind = "bathroom_start"
	KindBathroomEnd   EventKind = "bathroom_end"
	KindHeartbeat     EventKind = "heartbeat"
)

// Wire event_type values.
const (
	WireOnline    = "online"
	WireOffline   = "offline"
	WireHeartbeat = "heartbeat"
)

// Wire meta values.
const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
	ActionBreak    = "break"
	ActionBathroom = "bathroom"
	PhaseStart     = "start"
	PhaseEnd       = "end"
)

// DecodeKind maps the wire triple {event_type, meta.action, meta.phase} to an
// EventKind. An offline event is a check-out regardless of annotations; an
// online event with no action is a plain check-in.
func DecodeKind(eventType, action, phase string) (EventKind, error) {
	switch eventType {
	case WireHeartbeat:
		return KindHeartbeat, nil
	case WireOffline:
		return KindCheckOut, nil
	case WireOnline:
		switch action {
		case "", ActionCheckIn:
			return KindCheckIn, nil
		case ActionCheckOut:
			return KindCheckOut, nil
		case ActionBreak:
			switch phase {
			case PhaseStart:
				return KindBreakStart, nil
			case PhaseEnd:
				return KindBreakEnd, nil
			}
		case ActionBathroom:
			switch phase {
			case PhaseStart:
				return KindBathroomStart, nil
			case PhaseEnd:
				return KindBathroomEnd, nil
			}
		}
	}
	return "", fmt.Errorf("%w: type=%q action=%q phase=%q", ErrUnknownEventKind, eventType, action, phase)
}

// Wire returns the wire triple a kind is persisted as.
func (k EventKind) Wire() (eventType, action, phase string) {
	switch k {
	case KindHeartbeat:
		return WireHeartbeat, "", ""
	case KindCheckOut:
		return WireOffline, ActionCheckOut, ""
	case KindCheckIn:
		return WireOnline, ActionCheckIn, ""
	case KindBreakStart:
		return WireOnline, ActionBreak, PhaseStart
	case KindBreakEnd:
		return WireOnline, ActionBreak, PhaseEnd
	case KindBathroomStart:
		return WireOnline, ActionBathroom, PhaseStart
	case KindBathroomEnd:
		return WireOnline, ActionBathroom, PhaseEnd
	}
	return "", "", ""
}

// IsContact reports whether the kind qualifies as first contact for the
// lateness/absence detector: any online or heartbeat event counts, a
// check-out does not.
func (k EventKind) IsContact() bool {
	return k != KindCheckOut
}
