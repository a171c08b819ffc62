package models

import "encoding/json"

// StrokeSegment is one drawn line segment between two canvas points.
// The server never validates coordinates or width; frames are relayed
// byte for byte. This struct exists for the parts of the code that need
// typed access (the REST surface, tests).
type StrokeSegment struct {
	FromX float64 `json:"fromX"`
	FromY float64 `json:"fromY"`
	ToX   float64 `json:"toX"`
	ToY   float64 `json:"toY"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Save  bool    `json:"save,omitempty"`
}

// InitMessage carries the full persisted log to a freshly connected client.
// Data holds raw entry bytes exactly as they were received and stored, so
// replay is byte-faithful.
type InitMessage struct {
	Type string            `json:"type"`
	Data []json.RawMessage `json:"data"`
}

const (
	TypeInit  = "init"
	TypeClear = "clear"
)
