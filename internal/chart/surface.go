// Package chart wires layout, reconciliation and viewport handling into
// the two chart types: a zoomable time-series line and a collapsible
// Gantt chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"chart2svg/internal/axis"
	"chart2svg/internal/config"
	"chart2svg/internal/scene"
)

// ErrNoData is returned by Render before any data has been set.
var ErrNoData = errors.New("no data")

// Surface is the document a chart draws into plus its layers.
type Surface struct {
	Doc    *scene.Document
	Layers scene.Layers
}

// NewSurface builds a fresh document with the standard layers.
func NewSurface(dataLayerID string) (Surface, error) {
	doc := scene.NewDocument(dataLayerID)
	layers, err := scene.LookupLayers(doc, dataLayerID)
	if err != nil {
		return Surface{}, err
	}
	return Surface{Doc: doc, Layers: layers}, nil
}

func (s Surface) validate() error {
	if s.Doc == nil {
		return fmt.Errorf("%w: document", scene.ErrMissingLayer)
	}
	return s.Layers.Validate()
}

// writeSettled serializes the surface as it will look once every
// transition started so far has finished.
func (s Surface) writeSettled(w io.Writer, cfg config.Config) error {
	return scene.WriteSVG(w, s.Doc, s.Doc.Now().Add(cfg.TransitionDuration()))
}

// frame sizes the svg root and offsets the plot by the padding.
func (s Surface) frame(cfg config.Config) {
	s.Doc.SVG.
		SetAttr("width", num(cfg.Width)).
		SetAttr("height", num(cfg.Height)).
		SetAttr("viewBox", cfg.ViewBox()).
		SetAttr("style", "background-color:"+cfg.Colors.Background)
	s.Layers.Root.SetAttr("transform", translate(cfg.Padding.Left, cfg.Padding.Top))
}

// renderAxis redraws layer from scratch: a domain line plus one group per
// tick holding its gridline and label.
func renderAxis(layer *scene.Element, a axis.Axis, cfg config.Config) {
	layer.Clear()
	transform := a.Transform
	if transform == "" {
		transform = "translate(0,0)"
	}
	layer.
		SetAttr("class", "axis axis-"+a.Orient.String()).
		SetAttr("transform", transform).
		SetAttr("font-family", cfg.Font.Family).
		SetAttr("font-size", strconv.Itoa(cfg.Font.Size)).
		SetAttr("text-anchor", a.TextAnchor())

	layer.Append(scene.NewElement("path")).
		SetAttr("class", "domain").
		SetAttr("d", domainPath(a)).
		SetAttr("stroke", cfg.Colors.Text).
		SetAttr("fill", "none")

	lx, ly := a.LineEnd()
	tx, ty := a.LabelOffset()
	for _, t := range a.Ticks {
		x, y := a.Origin(t)
		g := layer.Append(scene.NewElement("g")).
			SetAttr("class", "tick").
			SetAttr("transform", translate(x, y))
		g.Append(scene.NewElement("line")).
			SetAttr("x1", "0").SetAttr("y1", "0").
			SetAttr("x2", num(lx)).SetAttr("y2", num(ly)).
			SetAttr("stroke", cfg.Colors.Grid)
		label := g.Append(scene.NewElement("text")).
			SetAttr("x", num(tx)).SetAttr("y", num(ty)).
			SetAttr("dy", a.Baseline()).
			SetAttr("fill", cfg.Colors.Text)
		label.Text = t.Label
	}
}

func domainPath(a axis.Axis) string {
	lo, hi := num(a.Extent[0]), num(a.Extent[1])
	if a.Orient == axis.Left || a.Orient == axis.Right {
		return "M0," + lo + "V" + hi
	}
	return "M" + lo + ",0H" + hi
}

func translate(x, y float64) string {
	return "translate(" + num(x) + "," + num(y) + ")"
}

// num formats v with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
