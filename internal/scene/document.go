package scene

import (
	"errors"
	"fmt"
	"time"
)

// Fixed ids of the layers a chart draws into.
const (
	RootID       = "root"
	AxisID       = "axis"
	XAxisID      = "xAxis"
	YAxisID      = "yAxis"
	LinesLayerID = "linesLayer"
	GanttLayerID = "ganttLayer"
)

// ErrMissingLayer is returned when a document lacks one of the layers a
// chart needs.
var ErrMissingLayer = errors.New("missing layer")

// Document is an svg root element plus the clock that drives its
// transitions.
type Document struct {
	SVG *Element
	Now Clock
}

// NewDocument builds the standard layer skeleton:
//
//	svg
//	└── g#root
//	    ├── g#axis
//	    │   ├── g#xAxis
//	    │   └── g#yAxis
//	    └── g#<dataLayerID>
func NewDocument(dataLayerID string) *Document {
	svg := NewElement("svg")
	root := svg.Append(NewElement("g").WithID(RootID))
	ax := root.Append(NewElement("g").WithID(AxisID))
	ax.Append(NewElement("g").WithID(XAxisID))
	ax.Append(NewElement("g").WithID(YAxisID))
	root.Append(NewElement("g").WithID(dataLayerID))
	return &Document{SVG: svg, Now: time.Now}
}

// Layers are the five surfaces a chart renders into. Charts receive them
// ready-made instead of searching for them.
type Layers struct {
	Root  *Element
	Axis  *Element
	XAxis *Element
	YAxis *Element
	Data  *Element
}

// LookupLayers finds the standard layers of doc by id. It fails with
// ErrMissingLayer naming the first absent id.
func LookupLayers(doc *Document, dataLayerID string) (Layers, error) {
	var l Layers
	for _, f := range []struct {
		id  string
		dst **Element
	}{
		{RootID, &l.Root},
		{AxisID, &l.Axis},
		{XAxisID, &l.XAxis},
		{YAxisID, &l.YAxis},
		{dataLayerID, &l.Data},
	} {
		el := doc.SVG.Find(f.id)
		if el == nil {
			return Layers{}, fmt.Errorf("%w: %q", ErrMissingLayer, f.id)
		}
		*f.dst = el
	}
	return l, nil
}

// Validate reports ErrMissingLayer if any layer is nil.
func (l Layers) Validate() error {
	for _, f := range []struct {
		id string
		el *Element
	}{
		{RootID, l.Root},
		{AxisID, l.Axis},
		{XAxisID, l.XAxis},
		{YAxisID, l.YAxis},
		{"data", l.Data},
	} {
		if f.el == nil {
			return fmt.Errorf("%w: %q", ErrMissingLayer, f.id)
		}
	}
	return nil
}
