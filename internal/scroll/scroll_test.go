package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name           string
		y, doc, view   float64
		wantProgress   float64
		wantVisibility bool
	}{
		{"top", 0, 3000, 1000, 0, false},
		{"half", 1000, 3000, 1000, 50, false},
		{"past viewport", 1500, 3000, 1000, 75, true},
		{"bottom", 2000, 3000, 1000, 100, true},
		{"overscroll clamps", 2500, 3000, 1000, 100, true},
		{"negative clamps", -50, 3000, 1000, 0, false},
		{"zero range", 10, 1000, 1000, 0, false},
		{"short document", 0, 500, 1000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.y, tt.doc, tt.view)
			assert.InDelta(t, tt.wantProgress, got.Progress, 1e-9)
			assert.Equal(t, tt.wantVisibility, got.Visible)
		})
	}
}
