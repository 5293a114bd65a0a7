package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0m"},
		{45 * time.Second, "0m"},
		{90 * time.Minute, "1h 30m"},
		{5 * time.Hour, "5h"},
		{26*time.Hour + 5*time.Minute, "1d 2h 5m"},
		{48 * time.Hour, "2d"},
		{-time.Minute, "N/A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in), "FormatDuration(%v)", tt.in)
	}
}
