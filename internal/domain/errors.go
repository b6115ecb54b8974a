package domain

import (
	"context"
	"errors"
)

var (
	// ErrDialogueEngine means the dialogue engine call failed or returned malformed data
	ErrDialogueEngine = errors.New("dialogue engine error")
	// ErrStoreUnavailable means a persistence connect, read or write failed
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrLookupClient means the external recipe API failed
	ErrLookupClient = errors.New("recipe lookup error")
	// ErrInvalidSelection means the user picked a non-numeric or out-of-range entry
	ErrInvalidSelection = errors.New("invalid selection")
)

// ErrorKind returns a short label for logs
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrInvalidSelection):
		return "invalid_selection"
	case errors.Is(err, ErrDialogueEngine):
		return "dialogue_engine"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrLookupClient):
		return "lookup_client"
	default:
		return "unknown"
	}
}
