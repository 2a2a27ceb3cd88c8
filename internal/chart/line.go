package chart

import (
	"fmt"
	"io"
	"strings"

	"chart2svg/internal/config"
	"chart2svg/internal/layout"
	"chart2svg/internal/logging"
	"chart2svg/internal/reconcile"
	"chart2svg/internal/scene"
	"chart2svg/internal/series"
	"chart2svg/internal/viewport"
)

// lineKey binds the single path of the line chart.
const lineKey = "line"

// Line is the zoomable time-series line chart. It keeps its scene between
// renders; only the path geometry and the axes change.
type Line struct {
	cfg     config.Config
	surf    Surface
	log     *logging.Logger
	handler *viewport.Handler

	data   series.Series
	base   *layout.Line // unzoomed
	layout *layout.Line // base seen through the current transform
	stats  reconcile.Stats
}

// NewLine prepares a line chart drawing into surf. Zoom gestures delivered
// to Handler re-render the chart.
func NewLine(surf Surface, cfg config.Config, log *logging.Logger) (*Line, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateHeight(); err != nil {
		return nil, err
	}
	if err := surf.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NopLogger()
	}
	c := &Line{cfg: cfg, surf: surf, log: log.With("chart", "line")}
	z := viewport.NewZoom(cfg.CanvasWidth(), cfg.CanvasHeight(), cfg.Zoom.MinScale, cfg.Zoom.MaxScale)
	c.handler = viewport.NewHandler(z, c.log)
	c.handler.OnZoom(func(t viewport.Transform) {
		if err := c.Zoom(t); err != nil {
			c.log.Warn("zoom render failed", "error", err)
		}
	})
	return c, nil
}

// SetData replaces the series, recomputes extents and scales, and
// renders. The current zoom is kept.
func (c *Line) SetData(s series.Series) error {
	base, err := layout.ForLine(s, c.cfg)
	if err != nil {
		return err
	}
	c.data = s
	c.base = base
	c.layout = base.RescaleY(c.handler.Transform())
	c.log.Debug("extents",
		"x0", base.XExtent[0], "x1", base.XExtent[1],
		"y0", base.YExtent[0], "y1", base.YExtent[1],
		"points", len(s))
	return c.Render()
}

// Zoom re-renders with the value scale seen through t. Extents are not
// recomputed.
func (c *Line) Zoom(t viewport.Transform) error {
	if c.base == nil {
		return ErrNoData
	}
	c.layout = c.base.RescaleY(t)
	return c.Render()
}

// Render redraws the axes and reconciles the line path.
func (c *Line) Render() error {
	if c.layout == nil {
		return ErrNoData
	}
	l := c.layout
	c.surf.frame(c.cfg)
	renderAxis(c.surf.Layers.XAxis, l.XAxis, c.cfg)
	renderAxis(c.surf.Layers.YAxis, l.YAxis, c.cfg)

	now := c.surf.Doc.Now()
	dur := c.cfg.TransitionDuration()
	c.stats = reconcile.Join(c.surf.Layers.Data, []series.Series{c.data},
		func(series.Series) string { return lineKey },
		reconcile.Handlers[series.Series]{
			Tag: "path",
			Enter: func(el *scene.Element, _ series.Series) {
				el.SetAttr("class", "line").
					SetAttr("fill", "none").
					SetAttr("stroke", c.cfg.Colors.Line).
					SetAttr("stroke-width", "1.5")
			},
			Apply: func(el *scene.Element, s series.Series) {
				el.TransitionTo(now, dur, scene.Attr{Name: "d", Value: pathData(l.Vertices(s))})
			},
		})
	c.log.Debug("render",
		"entered", c.stats.Entered, "updated", c.stats.Updated, "exited", c.stats.Exited,
		"transform", c.handler.Transform().String())
	return nil
}

// pathData joins vertices as "Mx,yLx,y...".
func pathData(vs [][2]float64) string {
	var b strings.Builder
	for i, v := range vs {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(num(v[0]))
		b.WriteByte(',')
		b.WriteString(num(v[1]))
	}
	return b.String()
}

// Handler returns the gesture handler driving Zoom.
func (c *Line) Handler() *viewport.Handler { return c.handler }

// Layout returns the layout of the last render, or nil.
func (c *Line) Layout() *layout.Line { return c.layout }

// Stats returns what the last render's reconciliation did.
func (c *Line) Stats() reconcile.Stats { return c.stats }

// Path returns the line's path element, or nil before the first render.
func (c *Line) Path() *scene.Element {
	return c.surf.Layers.Data.ChildByKey(lineKey)
}

// ViewBox is the svg viewBox for the configured size.
func (c *Line) ViewBox() string { return c.cfg.ViewBox() }

// WriteSVG writes the settled chart.
func (c *Line) WriteSVG(w io.Writer) error {
	if c.layout == nil {
		return ErrNoData
	}
	if err := c.surf.writeSettled(w, c.cfg); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}
