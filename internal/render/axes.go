package render

import "math"

// Axes translates between chart coordinates and screen cells. The plot area
// starts at (Left, Top) and spans Width columns and Height rows; Y grows
// upwards on the chart and downwards on screen.
type Axes struct {
	Left, Top     int
	Width, Height int
	XMin, XMax    float64
	YMax          float64
}

// NewAxes fits the data ranges into the given plot area.
func NewAxes(left, top, width, height int, xMin, xMax, yMax float64) *Axes {
	if yMax <= 0 || math.IsNaN(yMax) {
		yMax = 1
	}
	return &Axes{Left: left, Top: top, Width: width, Height: height, XMin: xMin, XMax: xMax, YMax: yMax}
}

// Column maps x to a screen column.
func (a *Axes) Column(x float64) int {
	if a.XMax <= a.XMin || a.Width <= 1 {
		return a.Left
	}
	f := (x - a.XMin) / (a.XMax - a.XMin)
	return a.Left + int(math.Round(f*float64(a.Width-1)))
}

// Row maps y to a screen row. y == 0 lands on the bottom row of the area.
func (a *Axes) Row(y float64) int {
	if a.Height <= 1 {
		return a.Top
	}
	f := y / a.YMax
	return a.Top + a.Height - 1 - int(math.Round(f*float64(a.Height-1)))
}

// ToScreen converts (x, y) to a screen cell. visible is false when the cell
// falls outside the plot area or y is not finite.
func (a *Axes) ToScreen(x, y float64) (sx, sy int, visible bool) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	sx, sy = a.Column(x), a.Row(y)
	visible = sx >= a.Left && sx < a.Left+a.Width && sy >= a.Top && sy < a.Top+a.Height
	return
}

// ColumnToX converts a screen column back to the chart's X value.
func (a *Axes) ColumnToX(sx int) float64 {
	if a.Width <= 1 {
		return a.XMin
	}
	return a.XMin + float64(sx-a.Left)*(a.XMax-a.XMin)/float64(a.Width-1)
}
