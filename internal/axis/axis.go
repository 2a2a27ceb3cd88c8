// Package axis derives tick descriptors from scales: where each tick sits,
// what it reads, and how far its gridline reaches across the plot.
package axis

import (
	"math"
	"strconv"

	"chart2svg/internal/scale"
)

// Orient says which side of the plot an axis is drawn on.
type Orient int

const (
	Top Orient = iota
	Right
	Bottom
	Left
)

func (o Orient) String() string {
	switch o {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	default:
		return "left"
	}
}

// MonthYear is the label layout used on time axes.
const MonthYear = "Jan 2006"

// DefaultPadding is the gap between a tick's line origin and its label.
const DefaultPadding = 3

// Tick is one tick: its position along the axis and its label.
type Tick struct {
	Key   string // band key for categorical axes, empty otherwise
	Pos   float64
	Label string
}

// Axis describes everything needed to draw one axis group. Ticks double
// as gridlines: Grid is the length of each tick line, spanning the plot.
type Axis struct {
	Orient  Orient
	Ticks   []Tick
	Grid    float64
	Padding float64
	Extent  [2]float64 // pixel range covered by the axis line
	// Transform positions the axis group inside the plot, e.g.
	// "translate(0,565)" for an x axis pinned to the bottom.
	Transform string
}

func vertical(o Orient) bool { return o == Left || o == Right }

// direction is +1 for axes whose ticks grow towards positive coordinates
// (bottom, right) and -1 otherwise. Gridlines run against it.
func direction(o Orient) float64 {
	if o == Top || o == Left {
		return -1
	}
	return 1
}

// LineEnd is the tick line's end point relative to the tick origin.
func (a Axis) LineEnd() (dx, dy float64) {
	end := -direction(a.Orient) * a.Grid
	if vertical(a.Orient) {
		return end, 0
	}
	return 0, end
}

// LabelOffset is the label's anchor point relative to the tick origin.
func (a Axis) LabelOffset() (dx, dy float64) {
	off := direction(a.Orient) * a.Padding
	if vertical(a.Orient) {
		return off, 0
	}
	return 0, off
}

// TextAnchor is the SVG text-anchor for labels on this axis.
func (a Axis) TextAnchor() string {
	switch a.Orient {
	case Left:
		return "end"
	case Right:
		return "start"
	default:
		return "middle"
	}
}

// Baseline is the SVG dy shift that places labels beside, above or below
// the tick origin.
func (a Axis) Baseline() string {
	switch a.Orient {
	case Top:
		return "0em"
	case Bottom:
		return "0.71em"
	default:
		return "0.32em"
	}
}

// Origin returns the tick origin for t in the axis group's coordinates.
func (a Axis) Origin(t Tick) (x, y float64) {
	if vertical(a.Orient) {
		return 0, t.Pos
	}
	return t.Pos, 0
}

// ForTime builds an axis from a time scale with at most count ticks
// labelled with layout.
func ForTime(s scale.Time, count int, layout string, grid float64, orient Orient) Axis {
	a := Axis{Orient: orient, Grid: grid, Padding: DefaultPadding, Extent: s.Range}
	for _, t := range s.Ticks(count) {
		a.Ticks = append(a.Ticks, Tick{Pos: s.Map(t), Label: t.Format(layout)})
	}
	return a
}

// ForLinear builds an axis from a linear scale with at most count ticks.
func ForLinear(s scale.Linear, count int, grid float64, orient Orient) Axis {
	a := Axis{Orient: orient, Grid: grid, Padding: DefaultPadding, Extent: s.Range}
	ticks := s.Ticks(count)
	decimals := precision(ticks)
	for _, v := range ticks {
		a.Ticks = append(a.Ticks, Tick{Pos: s.Map(v), Label: strconv.FormatFloat(v, 'f', decimals, 64)})
	}
	return a
}

// ForBand builds an axis with one tick centred on each band. Labels come
// from label(key); keys it does not know are labelled with the key itself.
func ForBand(b scale.Band, label func(key string) (string, bool), grid float64, orient Orient) Axis {
	a := Axis{Orient: orient, Grid: grid, Padding: DefaultPadding, Extent: b.Range}
	for _, key := range b.Domain {
		pos, _ := b.Center(key)
		text, ok := label(key)
		if !ok {
			text = key
		}
		a.Ticks = append(a.Ticks, Tick{Key: key, Pos: pos, Label: text})
	}
	return a
}

// precision returns the number of decimals needed to tell evenly spaced
// ticks apart, hiding float noise such as 0.30000000000000004.
func precision(ticks []float64) int {
	if len(ticks) < 2 {
		return 0
	}
	step := math.Abs(ticks[1] - ticks[0])
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return 0
	}
	d := int(-math.Floor(math.Log10(step) + 1e-9))
	if d < 0 {
		return 0
	}
	return d
}

// TranslateY returns a copy of a whose group is shifted down by y.
func (a Axis) TranslateY(y float64) Axis {
	a.Transform = "translate(0," + strconv.FormatFloat(y, 'f', -1, 64) + ")"
	return a
}
