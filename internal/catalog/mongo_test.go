package catalog

import (
	"math"
	"testing"
)

func TestClampCount(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want int32
	}{
		{"zero", 0, 0},
		{"small", 42, 42},
		{"max int32", math.MaxInt32, math.MaxInt32},
		{"beyond int32", math.MaxInt32 + 1, math.MaxInt32},
		{"max int64", math.MaxInt64, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampCount(tt.in); got != tt.want {
				t.Errorf("clampCount(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
