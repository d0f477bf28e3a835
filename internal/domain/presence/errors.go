package presence

import "errors"

var (
	ErrUnknownEventKind = errors.New("unknown presence event kind")
	ErrEventNotFound    = errors.New("presence event not found")
)
