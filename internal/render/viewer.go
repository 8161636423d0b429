package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// yLabelWidth is the number of columns reserved left of the Y axis.
const yLabelWidth = 9

// Viewer shows a chart full screen until the operator closes it with q, Esc
// or Enter. The arrow keys (or h/l) move a cursor along the curve and the
// footer shows the value under it.
type Viewer struct {
	// Screen, when set, is drawn on instead of opening the terminal. The
	// caller owns its lifecycle.
	Screen tcell.Screen
}

// Plot opens the chart and blocks until it is closed.
func (v *Viewer) Plot(c Chart) error {
	scr := v.Screen
	if scr == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := s.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		defer s.Fini()
		scr = s
	}
	scr.SetTitle(c.Label)

	cursor := peakIndex(c)
	for {
		drawChart(scr, c, cursor)
		scr.Show()

		ev := scr.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			scr.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyEnter:
				return nil
			case tcell.KeyLeft:
				cursor = clamp(cursor-1, len(c.Points))
			case tcell.KeyRight:
				cursor = clamp(cursor+1, len(c.Points))
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q', 'Q':
					return nil
				case 'h':
					cursor = clamp(cursor-1, len(c.Points))
				case 'l':
					cursor = clamp(cursor+1, len(c.Points))
				}
			}
		}
	}
}

func peakIndex(c Chart) int {
	best := -1
	for i, p := range c.Points {
		if math.IsNaN(p.Y) {
			continue
		}
		if best < 0 || p.Y > c.Points[best].Y {
			best = i
		}
	}
	if best < 0 && len(c.Points) > 0 {
		return 0
	}
	return best
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// drawChart renders title, axes, one bar per column and the footer.
// cursor indexes c.Points; -1 hides it.
func drawChart(scr tcell.Screen, c Chart, cursor int) {
	scr.Clear()
	w, h := scr.Size()

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	axisStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	barStyle := tcell.StyleDefault.Foreground(tcell.ColorAqua)
	cursorStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	putCentered(scr, 0, c.Title, titleStyle)
	putCentered(scr, 1, c.Label, labelStyle)

	if w < yLabelWidth+12 || h < 10 || len(c.Points) == 0 {
		putText(scr, 0, h-1, "Nothing to draw here. [q] close", labelStyle)
		return
	}

	var yMax float64
	if peak, ok := c.Peak(); ok {
		yMax = peak.Y
	}
	lo, hi := c.xRange()
	ax := NewAxes(yLabelWidth+1, 3, w-yLabelWidth-2, h-7, lo, hi, yMax)
	axisRow := ax.Top + ax.Height

	// Axes.
	for row := ax.Top; row < axisRow; row++ {
		scr.SetContent(yLabelWidth, row, '│', nil, axisStyle)
	}
	for col := ax.Left; col < ax.Left+ax.Width; col++ {
		scr.SetContent(col, axisRow, '─', nil, axisStyle)
	}
	scr.SetContent(yLabelWidth, axisRow, '└', nil, axisStyle)
	for _, y := range []float64{ax.YMax, ax.YMax / 2, 0} {
		putText(scr, 0, ax.Row(y), fmt.Sprintf("%8.4f", y), labelStyle)
	}
	loText, hiText := fmt.Sprintf("%g", lo), fmt.Sprintf("%g", hi)
	putText(scr, ax.Left, axisRow+1, loText, labelStyle)
	hiCol := ax.Left + ax.Width - runewidth.StringWidth(hiText)
	putText(scr, hiCol, axisRow+1, hiText, labelStyle)

	// Middle tick, labelled with the level that lands on that column.
	midCol := ax.Left + ax.Width/2
	midText := fmt.Sprintf("%g", math.Round(ax.ColumnToX(midCol)))
	midStart := midCol - runewidth.StringWidth(midText)/2
	if midStart > ax.Left+runewidth.StringWidth(loText) && midStart+runewidth.StringWidth(midText) < hiCol {
		scr.SetContent(midCol, axisRow, '┴', nil, axisStyle)
		putText(scr, midStart, axisRow+1, midText, labelStyle)
	}

	// Several levels share a column on narrow terminals; keep the highest.
	colMax := make(map[int]float64)
	for _, p := range c.Points {
		sx, _, visible := ax.ToScreen(p.X, p.Y)
		if !visible {
			continue
		}
		if v, ok := colMax[sx]; !ok || p.Y > v {
			colMax[sx] = p.Y
		}
	}
	base := ax.Row(0)
	for sx, y := range colMax {
		if y <= 0 {
			continue
		}
		for row := ax.Row(y); row <= base; row++ {
			scr.SetContent(sx, row, '█', nil, barStyle)
		}
	}

	footer := "[←/→] move  [q/Esc/Enter] close"
	if cursor >= 0 && cursor < len(c.Points) {
		p := c.Points[cursor]
		scr.SetContent(ax.Column(p.X), axisRow, '▲', nil, cursorStyle)
		footer = fmt.Sprintf("level %g  p=%s  %s", p.X, formatProbability(p.Y), footer)
	}
	putText(scr, 0, h-1, footer, labelStyle)
}

func formatProbability(y float64) string {
	if math.IsNaN(y) {
		return "n/a"
	}
	return fmt.Sprintf("%.6f", y)
}

// putText writes s starting at (x, y), advancing by each rune's display
// width, and stops at the right edge of the screen.
func putText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if x+rw > sw {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x += max(rw, 1)
	}
}

// putCentered writes s centred on row y, truncating it to the screen width.
func putCentered(scr tcell.Screen, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	s = runewidth.Truncate(s, sw, "…")
	x := (sw - runewidth.StringWidth(s)) / 2
	putText(scr, x, y, s, st)
}
