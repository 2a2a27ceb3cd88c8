// Package layout computes extents, scales and axes for both chart types.
// Every function here is pure: layouts are recomputed whenever data or
// canvas size changes, never patched.
package layout

import (
	"fmt"
	"time"

	"chart2svg/internal/axis"
	"chart2svg/internal/config"
	"chart2svg/internal/gantt"
	"chart2svg/internal/scale"
	"chart2svg/internal/series"
)

// labelGap is kept free between a band label and the plot edge.
const labelGap = 6

// Line is the layout of the time-series line chart.
type Line struct {
	Config  config.Config
	XExtent [2]time.Time
	YExtent [2]float64

	XScale scale.Time   // niced, mapped to [0, canvas width]
	YScale scale.Linear // mapped to [canvas height, 0], possibly zoomed
	XAxis  axis.Axis
	YAxis  axis.Axis
}

// ForLine lays out s on the canvas described by cfg. It returns
// series.ErrEmptySeries when there is nothing to plot.
func ForLine(s series.Series, cfg config.Config) (*Line, error) {
	xExt, err := series.DateExtent(s)
	if err != nil {
		return nil, fmt.Errorf("date extent: %w", err)
	}
	yExt, err := series.PriceExtent(s)
	if err != nil {
		return nil, fmt.Errorf("price extent: %w", err)
	}

	cw, ch := cfg.CanvasWidth(), cfg.CanvasHeight()
	l := &Line{
		Config:  cfg,
		XExtent: xExt,
		YExtent: yExt,
		XScale:  scale.NewTime(xExt, [2]float64{0, cw}).Nice(cfg.TickCount),
		YScale:  scale.NewLinear(yExt, [2]float64{ch, 0}),
	}
	l.XAxis = axis.ForTime(l.XScale, cfg.TickCount, axis.MonthYear, ch, axis.Bottom).TranslateY(ch)
	l.YAxis = l.yAxis()
	return l, nil
}

// YTransform maps an unzoomed pixel y to its zoomed position.
type YTransform interface {
	ApplyY(y float64) float64
}

// RescaleY returns a copy of l whose value scale range is the unzoomed
// range [canvas height, 0] passed through t. Only the y axis is
// re-derived; extents are reused as is.
func (l *Line) RescaleY(t YTransform) *Line {
	z := *l
	ch := z.Config.CanvasHeight()
	z.YScale = l.YScale.WithRange([2]float64{t.ApplyY(ch), t.ApplyY(0)})
	z.YAxis = z.yAxis()
	return &z
}

// yAxis ticks the values currently visible in [canvas height, 0], which
// after a zoom is a sub-range of the domain.
func (l *Line) yAxis() axis.Axis {
	ch := l.Config.CanvasHeight()
	visible := scale.NewLinear(
		[2]float64{l.YScale.Invert(ch), l.YScale.Invert(0)},
		[2]float64{ch, 0},
	)
	return axis.ForLinear(visible, l.Config.TickCount, l.Config.CanvasWidth(), axis.Left)
}

// Gantt is the layout of the Gantt chart for one flatten pass.
type Gantt struct {
	Config  config.Config // Height derived from the row count
	XExtent [2]time.Time

	XScale scale.Time // not niced, mapped to [0, canvas width]
	YScale scale.Band // one band per node key, covering [0, canvas height]
	XAxis  axis.Axis
	YAxis  axis.Axis
}

// ForGantt lays out the visible nodes. The configured height is replaced
// by RowHeight times len(nodes).
func ForGantt(nodes []*gantt.Node, cfg config.Config) (*Gantt, error) {
	ext, err := gantt.TimeExtent(nodes)
	if err != nil {
		return nil, fmt.Errorf("time extent: %w", err)
	}
	cfg = cfg.WithRows(len(nodes))
	cw, ch := cfg.CanvasWidth(), cfg.CanvasHeight()

	keys := make([]string, len(nodes))
	names := make(map[string]string, len(nodes))
	for i, n := range nodes {
		keys[i] = n.Key
		names[n.Key] = n.Record.Name
	}

	g := &Gantt{
		Config:  cfg,
		XExtent: ext,
		XScale:  scale.NewTime(ext, [2]float64{0, cw}),
		YScale:  scale.NewBand(keys, [2]float64{0, ch}),
	}
	g.XAxis = axis.ForTime(g.XScale, cfg.TickCount, axis.MonthYear, ch, axis.Top)
	g.YAxis = axis.ForBand(g.YScale, func(key string) (string, bool) {
		name, ok := names[key]
		return name, ok
	}, cw, axis.Left).FitLabels(cfg.Font.Size, cfg.Padding.Left-labelGap)
	return g, nil
}

// Bar is the geometry of one Gantt row's bar.
type Bar struct {
	X, Y, Width, Height float64
}

// Bar positions n's bar. Entering and updating bars share this so their
// geometry cannot diverge.
func (g *Gantt) Bar(n *gantt.Node) Bar {
	y, _ := g.YScale.Pos(n.Key)
	x0, x1 := g.XScale.Map(n.Record.Start), g.XScale.Map(n.Record.End)
	return Bar{X: x0, Y: y, Width: x1 - x0, Height: g.YScale.Bandwidth()}
}

// Vertices maps every point of s through the current scales, in input
// order.
func (l *Line) Vertices(s series.Series) [][2]float64 {
	out := make([][2]float64, len(s))
	for i, p := range s {
		out[i] = [2]float64{l.XScale.Map(p.Date), l.YScale.Map(p.Price)}
	}
	return out
}
