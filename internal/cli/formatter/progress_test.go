package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCompactBar(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		width  int
		filled int
	}{
		{"empty", 0, 10, 0},
		{"half", 50, 10, 5},
		{"full", 100, 10, 10},
		{"over 100 clamps", 150, 10, 10},
		{"negative clamps", -20, 10, 0},
		{"tiny width clamps to 2", 50, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCompactBar(tt.pct, tt.width, true)
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.NotContains(t, got, "%")
		})
	}
}

func TestRenderProgress_Label(t *testing.T) {
	out := stripANSI(RenderProgress(33.3333, 6))
	assert.Equal(t, "[█░░░░░]  33%", out)
	assert.Contains(t, stripANSI(RenderProgress(120, 4)), "100%")
}
