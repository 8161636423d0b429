package render

import (
	"math"
	"testing"
)

func TestAxesCorners(t *testing.T) {
	ax := NewAxes(10, 3, 50, 11, -64, 319, 0.5)
	cases := []struct {
		name       string
		x, y       float64
		sx, sy     int
		wantInside bool
	}{
		{"origin", -64, 0, 10, 13, true},
		{"top right", 319, 0.5, 59, 3, true},
		{"middle", 127.5, 0.25, 35, 8, true},
		{"above range", 0, 1, 0, 0, false},
		{"nan", 0, math.NaN(), 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sx, sy, ok := ax.ToScreen(tc.x, tc.y)
			if ok != tc.wantInside {
				t.Fatalf("visible = %v, want %v", ok, tc.wantInside)
			}
			if ok && (sx != tc.sx || sy != tc.sy) {
				t.Errorf("ToScreen(%v, %v) = (%d, %d), want (%d, %d)", tc.x, tc.y, sx, sy, tc.sx, tc.sy)
			}
		})
	}
}

func TestAxesZeroYMaxFallsBack(t *testing.T) {
	ax := NewAxes(0, 0, 10, 10, 0, 9, 0)
	if ax.YMax != 1 {
		t.Errorf("YMax = %v, want 1", ax.YMax)
	}
}

func TestAxesColumnRoundTrip(t *testing.T) {
	ax := NewAxes(5, 0, 384, 10, -64, 319, 1)
	for _, x := range []float64{-64, 0, 100, 319} {
		if got := ax.ColumnToX(ax.Column(x)); got != x {
			t.Errorf("ColumnToX(Column(%v)) = %v", x, got)
		}
	}
}

func TestAxesSingleLevel(t *testing.T) {
	ax := NewAxes(2, 0, 20, 5, 7, 7, 1)
	if got := ax.Column(7); got != 2 {
		t.Errorf("Column = %d, want left edge 2", got)
	}
}
