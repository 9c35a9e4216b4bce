package geoengine

import (
	"testing"
)

func TestBounds_String(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		want   string
	}{
		{
			name:   "unit box",
			bounds: Bounds{-1, 1, -1, 1, -1, 1},
			want:   "[-1, 1] x [-1, 1] x [-1, 1]",
		},
		{
			name:   "zero",
			bounds: Bounds{},
			want:   "[0, 0] x [0, 0] x [0, 0]",
		},
		{
			name:   "fractional extents",
			bounds: Bounds{-0.5, 0.5, 0, 2.25, -3.125, 0},
			want:   "[-0.5, 0.5] x [0, 2.25] x [-3.125, 0]",
		},
		{
			name:   "collapsed z",
			bounds: Bounds{-1, 1, -1, 1, 0, 0},
			want:   "[-1, 1] x [-1, 1] x [0, 0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bounds.String(); got != tt.want {
				t.Errorf("Bounds.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
