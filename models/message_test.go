package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rebyuu/draw4friends/models"
)

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.MessageKind
	}{
		{
			"Stroke",
			`{"fromX":0,"fromY":0,"toX":10,"toY":10,"color":"#000000","width":5}`,
			models.KindStroke,
		},
		{
			"Stroke With Save",
			`{"fromX":0,"fromY":0,"toX":10,"toY":10,"color":"#000000","width":5,"save":true}`,
			models.KindStroke,
		},
		{
			"Clear",
			`{"type":"clear"}`,
			models.KindClear,
		},
		{
			"Unknown Type Is A Stroke",
			`{"type":"wave"}`,
			models.KindStroke,
		},
		{
			"Non Object JSON Is A Stroke",
			`[1,2,3]`,
			models.KindStroke,
		},
		{
			"Type Of Wrong JSON Kind Is A Stroke",
			`{"type":7}`,
			models.KindStroke,
		},
		{
			"Invalid JSON",
			`{bad`,
			models.KindInvalid,
		},
		{
			"Empty Frame",
			``,
			models.KindInvalid,
		},
		{
			"Truncated Object",
			`{"fromX":0,`,
			models.KindInvalid,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, models.ClassifyMessage([]byte(tc.raw)))
		})
	}
}

func TestWantsPersist(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"Save True", `{"fromX":0,"save":true}`, true},
		{"Save False", `{"fromX":0,"save":false}`, false},
		{"Save Absent", `{"fromX":0}`, false},
		{"Save Null", `{"save":null}`, false},
		{"Save Wrong Type", `{"save":"yes"}`, false},
		{"Save Numeric", `{"save":1}`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, models.WantsPersist([]byte(tc.raw)))
		})
	}
}
