package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/lucasb-eyer/go-colorful"

	"chart2svg/internal/config"
	"chart2svg/internal/gantt"
	"chart2svg/internal/layout"
	"chart2svg/internal/logging"
	"chart2svg/internal/reconcile"
	"chart2svg/internal/scene"
)

// ErrUnknownKey is returned by Click for a key with no bar.
var ErrUnknownKey = errors.New("unknown key")

// Gantt is the collapsible Gantt chart. Collapse state is held here as a
// set of stable ids; the caller's records are never modified.
type Gantt struct {
	cfg       config.Config
	surf      Surface
	log       *logging.Logger
	flattener *gantt.Flattener
	barStart  colorful.Color
	barEnd    colorful.Color

	root      *gantt.Record
	maxDepth  int
	collapsed gantt.Collapsed
	nodes     []*gantt.Node
	index     map[string]*gantt.Node
	layout    *layout.Gantt
	stats     reconcile.Stats
}

// NewGantt prepares a Gantt chart drawing into surf.
func NewGantt(surf Surface, cfg config.Config, log *logging.Logger) (*Gantt, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := surf.validate(); err != nil {
		return nil, err
	}
	start, err := colorful.Hex(cfg.Colors.BarStart)
	if err != nil {
		return nil, fmt.Errorf("%w: colors.bar_start: %v", config.ErrInvalid, err)
	}
	end, err := colorful.Hex(cfg.Colors.BarEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: colors.bar_end: %v", config.ErrInvalid, err)
	}
	if log == nil {
		log = logging.NopLogger()
	}
	return &Gantt{
		cfg:       cfg,
		surf:      surf,
		log:       log.With("chart", "gantt"),
		flattener: gantt.NewFlattener(cfg.Identity),
		barStart:  start,
		barEnd:    end,
		collapsed: gantt.Collapsed{},
	}, nil
}

// Flattener exposes the flattener so callers can swap its key source.
func (c *Gantt) Flattener() *gantt.Flattener { return c.flattener }

// SetData replaces all records and collapse state, then renders. On error
// the chart keeps its previous data and scene.
func (c *Gantt) SetData(records []*gantt.Record) error {
	if err := gantt.CheckKeys(records); err != nil {
		return err
	}
	root := gantt.NewRoot(records)
	collapsed := gantt.Collapsed{}
	nodes, l, err := c.lay(root, collapsed)
	if err != nil {
		return err
	}
	c.root, c.maxDepth, c.collapsed = root, gantt.MaxDepth(root), collapsed
	c.draw(nodes, l)
	return nil
}

// Collapse collapses the records with the given names before the next
// render.
func (c *Gantt) Collapse(names ...string) int {
	if c.root == nil {
		return 0
	}
	return c.collapsed.CollapseNamed(c.root, names...)
}

// Render flattens the visible tree, lays it out, redraws the axes and
// reconciles one bar per visible node.
func (c *Gantt) Render() error {
	if c.root == nil {
		return ErrNoData
	}
	nodes, l, err := c.lay(c.root, c.collapsed)
	if err != nil {
		return err
	}
	c.draw(nodes, l)
	return nil
}

func (c *Gantt) lay(root *gantt.Record, collapsed gantt.Collapsed) ([]*gantt.Node, *layout.Gantt, error) {
	nodes := c.flattener.Flatten(root, collapsed)
	l, err := layout.ForGantt(nodes, c.cfg)
	if err != nil {
		return nil, nil, err
	}
	c.log.Debug("flatten", "visible", len(nodes), "collapsed", len(collapsed))
	return nodes, l, nil
}

func (c *Gantt) draw(nodes []*gantt.Node, l *layout.Gantt) {
	c.nodes, c.index, c.layout = nodes, gantt.Index(nodes), l

	c.surf.frame(l.Config)
	renderAxis(c.surf.Layers.XAxis, l.XAxis, l.Config)
	renderAxis(c.surf.Layers.YAxis, l.YAxis, l.Config)

	now := c.surf.Doc.Now()
	dur := c.cfg.TransitionDuration()
	c.stats = reconcile.Join(c.surf.Layers.Data, nodes,
		func(n *gantt.Node) string { return n.Key },
		reconcile.Handlers[*gantt.Node]{
			Tag: "rect",
			Enter: func(el *scene.Element, n *gantt.Node) {
				el.SetAttr("class", "bar").
					SetAttr("data-key", n.Key)
				el.On("click", func() {
					if err := c.toggle(el.Key); err != nil {
						c.log.Warn("toggle failed", "key", el.Key, "error", err)
					}
				})
			},
			Apply: func(el *scene.Element, n *gantt.Node) {
				b := l.Bar(n)
				el.SetAttr("fill", c.fill(n.Depth))
				el.TransitionTo(now, dur,
					scene.Attr{Name: "x", Value: num(b.X)},
					scene.Attr{Name: "y", Value: num(b.Y)},
					scene.Attr{Name: "width", Value: num(b.Width)},
					scene.Attr{Name: "height", Value: num(b.Height)},
				)
			},
		})
	c.log.Debug("render", "entered", c.stats.Entered, "updated", c.stats.Updated, "exited", c.stats.Exited)
}

// fill blends from the start to the end bar colour as depth increases.
func (c *Gantt) fill(depth int) string {
	t := 0.0
	if c.maxDepth > 0 {
		t = float64(depth) / float64(c.maxDepth)
	}
	return c.barStart.BlendLab(c.barEnd, t).Clamped().Hex()
}

// Click delivers a click to the bar bound to key, as a pointer would.
func (c *Gantt) Click(key string) error {
	el := c.surf.Layers.Data.ChildByKey(key)
	if el == nil {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	el.Dispatch("click")
	return nil
}

// toggle flips the collapse state of the node currently bound to key and
// re-renders. Leaves do not change state, but still re-render.
func (c *Gantt) toggle(key string) error {
	n, ok := c.index[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	collapsed := c.collapsed.Toggle(n.ID, n.Record)
	c.log.Debug("toggle", "name", n.Record.Name, "id", n.ID, "collapsed", collapsed)
	return c.Render()
}

// Nodes returns the visible nodes of the last render.
func (c *Gantt) Nodes() []*gantt.Node { return c.nodes }

// Layout returns the layout of the last render, or nil.
func (c *Gantt) Layout() *layout.Gantt { return c.layout }

// Stats returns what the last render's reconciliation did.
func (c *Gantt) Stats() reconcile.Stats { return c.stats }

// Bar returns the bar element bound to key, or nil.
func (c *Gantt) Bar(key string) *scene.Element {
	return c.surf.Layers.Data.ChildByKey(key)
}

// ViewBox is the svg viewBox, using the height derived from the visible
// rows once rendered.
func (c *Gantt) ViewBox() string {
	if c.layout != nil {
		return c.layout.Config.ViewBox()
	}
	return c.cfg.ViewBox()
}

// WriteSVG writes the settled chart.
func (c *Gantt) WriteSVG(w io.Writer) error {
	if c.layout == nil {
		return ErrNoData
	}
	if err := c.surf.writeSettled(w, c.cfg); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}
