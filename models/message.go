package models

import (
	"bytes"
	"encoding/json"
)

type MessageKind int

const (
	KindInvalid MessageKind = iota
	KindClear
	KindStroke
)

// ClassifyMessage inspects a raw inbound frame and reports its kind.
// Anything that is not valid JSON is KindInvalid and must be dropped
// silently. A "type":"clear" object is a clear; every other valid JSON
// object is treated as a stroke, matching the wire protocol where
// strokes carry no type discriminator.
func ClassifyMessage(raw []byte) MessageKind {
	if !json.Valid(raw) {
		return KindInvalid
	}

	var envelope struct {
		Type string `json:"type"`
	}
	// A type field of the wrong JSON kind still leaves the frame a
	// stroke; only the decode of the envelope decides clear vs stroke.
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Type == TypeClear {
		return KindClear
	}
	return KindStroke
}

// WantsPersist reports whether a stroke frame asked to be persisted.
// The save flag defaults to false and anything that is not the JSON
// boolean true (absent, false, null, wrong type) counts as false, so a
// sloppy client degrades to an ephemeral stroke rather than an error.
func WantsPersist(raw []byte) bool {
	var flag struct {
		Save json.RawMessage `json:"save"`
	}
	if err := json.Unmarshal(raw, &flag); err != nil {
		return false
	}
	return bytes.Equal(bytes.TrimSpace(flag.Save), []byte("true"))
}
