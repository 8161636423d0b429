package render

import (
	"fmt"
	"io"
	"math"

	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
)

// Text prints the non-zero part of a curve as a table. It is the renderer
// for terminals where a full-screen chart cannot be opened.
type Text struct {
	W io.Writer
}

// Plot writes c to t.W.
func (t Text) Plot(c Chart) error {
	if _, err := fmt.Fprintf(t.W, "%s\n%s\n", c.Label, c.Title); err != nil {
		return err
	}
	tbl := table.New("Level", "Probability").
		WithWriter(t.W).
		WithWidthFunc(runewidth.StringWidth)
	var empty, rows int
	for _, p := range c.Points {
		switch {
		case math.IsNaN(p.Y):
			empty++
		case p.Y > 0:
			tbl.AddRow(fmt.Sprintf("%g", p.X), formatProbability(p.Y))
			rows++
		}
	}
	if rows > 0 {
		tbl.Print()
	} else {
		fmt.Fprintln(t.W, "Never generated at any level.")
	}
	if peak, ok := c.Peak(); ok && peak.Y > 0 {
		fmt.Fprintf(t.W, "Peak: %s at level %g\n", formatProbability(peak.Y), peak.X)
	}
	if empty > 0 {
		fmt.Fprintf(t.W, "Levels without samples: %d\n", empty)
	}
	return nil
}
