package render

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestTextPlot(t *testing.T) {
	var buf bytes.Buffer
	c := Chart{
		Title: "minecraft:stone",
		Label: "Block spawn chance of minecraft$stone in minecraft$overworld",
		Points: []Point{
			{X: -64, Y: math.NaN()},
			{X: -63, Y: 0},
			{X: -62, Y: 0.25},
			{X: -61, Y: 0.5},
		},
	}
	if err := (Text{W: &buf}).Plot(c); err != nil {
		t.Fatalf("Plot: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"minecraft:stone",
		"Level",
		"0.250000",
		"Peak: 0.500000 at level -61",
		"Levels without samples: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "-63") {
		t.Errorf("zero level printed:\n%s", out)
	}
}

func TestTextPlotNeverGenerated(t *testing.T) {
	var buf bytes.Buffer
	c := Chart{Title: "minecraft:air", Points: []Point{{X: 0, Y: 0}}}
	if err := (Text{W: &buf}).Plot(c); err != nil {
		t.Fatalf("Plot: %v", err)
	}
	if !strings.Contains(buf.String(), "Never generated") {
		t.Errorf("output = %q", buf.String())
	}
	if strings.Contains(buf.String(), "Peak") {
		t.Errorf("peak printed for an all-zero curve: %q", buf.String())
	}
}
