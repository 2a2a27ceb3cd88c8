// Package reconcile binds a keyed data list to the children of a scene
// element: new keys enter, surviving keys update in place, vanished keys
// exit.
package reconcile

import "chart2svg/internal/scene"

// Handlers customize a Join.
type Handlers[T any] struct {
	// Tag is the element created for entering data.
	Tag string
	// Enter sets static attributes and event handlers on a freshly created
	// element. It runs once per element lifetime.
	Enter func(el *scene.Element, d T)
	// Apply sets the data-driven attributes. It runs for entering and
	// updating elements alike.
	Apply func(el *scene.Element, d T)
	// Exit disposes of an element whose key is gone. The default removes
	// it from the parent.
	Exit func(el *scene.Element)
}

// Stats counts what a Join did.
type Stats struct {
	Entered, Updated, Exited int
}

// Join reconciles parent's keyed children against data. Afterwards the set
// of keyed children equals the set of keys in data; elements whose key
// survived are the same *scene.Element values as before. Children without
// a key are not touched. When data repeats a key, later occurrences enter
// as new elements.
func Join[T any](parent *scene.Element, data []T, key func(T) string, h Handlers[T]) Stats {
	live := make(map[string]*scene.Element)
	for _, c := range parent.Children() {
		if c.Key == "" {
			continue
		}
		if _, dup := live[c.Key]; !dup {
			live[c.Key] = c
		}
	}

	var st Stats
	bound := make(map[*scene.Element]bool, len(data))
	for _, d := range data {
		k := key(d)
		el, ok := live[k]
		if ok && !bound[el] {
			st.Updated++
		} else {
			el = parent.Append(scene.NewElement(h.Tag))
			el.Key = k
			if h.Enter != nil {
				h.Enter(el, d)
			}
			st.Entered++
		}
		bound[el] = true
		if h.Apply != nil {
			h.Apply(el, d)
		}
	}

	var exiting []*scene.Element
	for _, c := range parent.Children() {
		if c.Key != "" && !bound[c] {
			exiting = append(exiting, c)
		}
	}
	for _, c := range exiting {
		if h.Exit != nil {
			h.Exit(c)
		} else {
			c.Remove()
		}
		st.Exited++
	}
	return st
}
