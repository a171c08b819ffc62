package store

import (
	"context"
	"encoding/json"
	"errors"
)

// CanvasStore is the persisted stroke log backing the shared canvas.
// Entries are the raw JSON bytes received from clients; the store never
// re-encodes them. All mutations are issued from the hub run loop only,
// so implementations do not need their own ordering locks.
type CanvasStore interface {
	// Load returns the full log, oldest entry first. A backing store
	// that does not exist yet is an empty log, not an error.
	Load(ctx context.Context) ([]json.RawMessage, error)

	// Append adds one entry at the end of the log.
	Append(ctx context.Context, entry json.RawMessage) error

	// Reset truncates the log to empty.
	Reset(ctx context.Context) error
}

// Custom error types for clarity
var (
	ErrItemNotFound = errors.New("item does not exist")
	ErrCorruptLog   = errors.New("persisted log is not a JSON array")
)
