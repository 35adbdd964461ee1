package xlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRowsAcrossRepresentations(t *testing.T) {
	rows := []Row{
		{"order_id": "42", "n": float64(1)},
		{"order_id": float64(42), "n": float64(2)},
		{"order_id": "a1b2", "n": float64(3)},
		{"order_id": nil, "n": float64(4)},
	}

	tests := []struct {
		name   string
		target any
		wantN  []float64
	}{
		{
			// Exact text match wins before any conversion is tried.
			name:   "text target exact",
			target: "42",
			wantN:  []float64{1},
		},
		{
			name:   "numeric target exact",
			target: float64(42),
			wantN:  []float64{2},
		},
		{
			name:   "opaque text target",
			target: "a1b2",
			wantN:  []float64{3},
		},
		{
			name:   "no match",
			target: "missing",
			wantN:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []float64
			for _, r := range matchRows(rows, "order_id", tt.target) {
				got = append(got, r["n"].(float64))
			}
			assert.Equal(t, tt.wantN, got)
		})
	}
}

func TestMatchRowsTextTargetNumericCells(t *testing.T) {
	// Child sheet stores the id numerically; the lookup id is text.
	rows := []Row{
		{"order_id": float64(42), "n": float64(1)},
		{"order_id": float64(42), "n": float64(2)},
		{"order_id": float64(7), "n": float64(3)},
	}
	matched := matchRows(rows, "order_id", "42")
	assert.Len(t, matched, 2)
}

func TestMatchRowsNumericTargetTextCells(t *testing.T) {
	rows := []Row{
		{"order_id": "42"},
		{"order_id": "7"},
	}
	matched := matchRows(rows, "order_id", float64(42))
	assert.Len(t, matched, 1)
	assert.Equal(t, "42", matched[0]["order_id"])
}

func TestMatchRowsStringifyFallback(t *testing.T) {
	// An integer target against float-inferred cells only matches once
	// both sides are rendered as text.
	rows := []Row{{"order_id": float64(42)}}
	matched := matchRows(rows, "order_id", 42)
	assert.Len(t, matched, 1)
}

func TestMatchRowsFirstStrategyWins(t *testing.T) {
	// Both a text and a numeric cell denote id 7; exact match stops at
	// the text one and the numeric row is not returned.
	rows := []Row{
		{"id": "7", "n": float64(1)},
		{"id": float64(7), "n": float64(2)},
	}
	matched := matchRows(rows, "id", "7")
	assert.Len(t, matched, 1)
	assert.Equal(t, float64(1), matched[0]["n"])
}
