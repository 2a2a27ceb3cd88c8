// Package scene is a retained tree of SVG elements. Elements persist across
// renders so that keyed reconciliation can update them in place and
// animate attribute changes.
package scene

import "time"

// Attr is one name/value attribute pair.
type Attr struct {
	Name, Value string
}

// Element is a node of the scene tree. Attributes keep their first-set
// order so serialization is deterministic.
type Element struct {
	Tag string
	// ID is the element's document id, used for layer lookup.
	ID string
	// Key is the data key the element is bound to by reconciliation.
	Key string
	// Text is the character content of text elements.
	Text string

	attrs    map[string]string
	names    []string
	tr       *Transition
	parent   *Element
	children []*Element
	handlers map[string]func()
}

// NewElement returns a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag, attrs: make(map[string]string)}
}

// WithID sets ID and returns e.
func (e *Element) WithID(id string) *Element {
	e.ID = id
	return e
}

// SetAttr sets name immediately. Any transition of name is dropped: the
// last writer wins.
func (e *Element) SetAttr(name, value string) *Element {
	if e.tr != nil {
		e.tr.drop(name)
	}
	e.set(name, value)
	return e
}

func (e *Element) set(name, value string) {
	if _, ok := e.attrs[name]; !ok {
		e.names = append(e.names, name)
	}
	e.attrs[name] = value
}

// Attr returns the value name will have once transitions finish.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// AttrAt samples name at now, interpolating through any transition in
// flight.
func (e *Element) AttrAt(name string, now time.Time) string {
	if e.tr != nil {
		if v, ok := e.tr.sample(name, now); ok {
			return v
		}
	}
	return e.attrs[name]
}

// Attrs samples every attribute at now in first-set order.
func (e *Element) Attrs(now time.Time) []Attr {
	out := make([]Attr, 0, len(e.names))
	for _, name := range e.names {
		out = append(out, Attr{Name: name, Value: e.AttrAt(name, now)})
	}
	return out
}

// Append adds child as the last child of e, detaching it from any previous
// parent.
func (e *Element) Append(child *Element) *Element {
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
	return child
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Parent returns e's parent, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns e's children. The slice must not be modified.
func (e *Element) Children() []*Element { return e.children }

// Clear removes all children of e.
func (e *Element) Clear() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// Find returns the first element with id in e's subtree, e included.
func (e *Element) Find(id string) *Element {
	if e.ID == id {
		return e
	}
	for _, c := range e.children {
		if f := c.Find(id); f != nil {
			return f
		}
	}
	return nil
}

// ChildByKey returns the direct child bound to key.
func (e *Element) ChildByKey(key string) *Element {
	for _, c := range e.children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// On registers fn for event, replacing any previous handler.
func (e *Element) On(event string, fn func()) {
	if e.handlers == nil {
		e.handlers = make(map[string]func())
	}
	e.handlers[event] = fn
}

// Dispatch runs the handler for event and reports whether there was one.
func (e *Element) Dispatch(event string) bool {
	fn, ok := e.handlers[event]
	if !ok {
		return false
	}
	fn()
	return true
}
