// Package gantt models the hierarchical task data behind the Gantt chart and
// flattens it into an ordered, keyed list of visible rows.
//
// Records are never mutated after loading. Which subtrees are folded away is
// held outside the tree in a Collapsed set, keyed by stable record ids.
package gantt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"chart2svg/internal/series"

	"gopkg.in/yaml.v3"
)

// RootKey is reserved for the synthetic root that wraps caller data.
const RootKey = "__root__"

// ErrEmptyTree is returned when an extent is requested over no nodes.
var ErrEmptyTree = errors.New("empty tree")

// ErrDuplicateKey is returned when two records in one tree carry the same
// caller key.
var ErrDuplicateKey = errors.New("duplicate key")

// keyPrefix marks ids taken from caller keys. Path ids start with a sibling
// index, so the two kinds never collide, and no caller key can equal RootKey.
const keyPrefix = "#"

// Record is one task: a named time span with optional subtasks.
type Record struct {
	Name     string
	Start    time.Time
	End      time.Time
	Key      string
	Children []*Record
}

// rawRecord is the on-disk shape; dates stay strings so every layout the
// series loader accepts is accepted here too.
type rawRecord struct {
	Name     string    `yaml:"name"`
	Start    string    `yaml:"start"`
	End      string    `yaml:"end"`
	Key      string    `yaml:"key"`
	Children []*Record `yaml:"children"`
}

// UnmarshalYAML implements yaml.Unmarshaler. JSON input decodes the same way.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	var raw rawRecord
	if err := node.Decode(&raw); err != nil {
		return err
	}

	start, err := series.ParseDate(raw.Start)
	if err != nil {
		return fmt.Errorf("line %d: record %q start: %w", node.Line, raw.Name, err)
	}
	end, err := series.ParseDate(raw.End)
	if err != nil {
		return fmt.Errorf("line %d: record %q end: %w", node.Line, raw.Name, err)
	}
	if end.Before(start) {
		return fmt.Errorf("line %d: record %q ends before it starts", node.Line, raw.Name)
	}

	*r = Record{
		Name:     raw.Name,
		Start:    start,
		End:      end,
		Key:      raw.Key,
		Children: raw.Children,
	}
	return nil
}

// LoadYAML decodes a top-level sequence of records. JSON is valid input.
func LoadYAML(r io.Reader) ([]*Record, error) {
	var records []*Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("error parsing gantt data: %w", err)
	}
	for _, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("error parsing gantt data: null record")
		}
	}
	if err := CheckKeys(records); err != nil {
		return nil, fmt.Errorf("error parsing gantt data: %w", err)
	}
	return records, nil
}

// LoadFile opens path and decodes it with LoadYAML.
func LoadFile(path string) ([]*Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening gantt data: %w", err)
	}
	defer file.Close()

	return LoadYAML(file)
}

// NewRoot wraps the caller's top-level records in the synthetic root.
func NewRoot(records []*Record) *Record {
	return &Record{Key: RootKey, Children: records}
}

// HasChildren reports whether r has any subtasks at all.
func (r *Record) HasChildren() bool {
	return len(r.Children) > 0
}

// VisibleChildren returns r's children unless id is collapsed.
func (r *Record) VisibleChildren(id string, collapsed Collapsed) []*Record {
	if collapsed.Has(id) {
		return nil
	}
	return r.Children
}

// CheckKeys reports ErrDuplicateKey if any caller key appears on more than
// one record anywhere in the tree.
func CheckKeys(records []*Record) error {
	seen := make(map[string]string)
	var err error
	Walk(NewRoot(records), func(_ string, r *Record, _ int) {
		if err != nil || r.Key == "" {
			return
		}
		if prev, ok := seen[r.Key]; ok {
			err = fmt.Errorf("%w: %q on records %q and %q", ErrDuplicateKey, r.Key, prev, r.Name)
			return
		}
		seen[r.Key] = r.Name
	})
	return err
}

// childID derives the stable id of the index-th child of the record whose
// stable id is parentID. Caller keys win; otherwise the id is a path of
// sibling positions and names, unique within one tree.
func childID(parentID string, index int, child *Record) string {
	if child.Key != "" {
		return keyPrefix + child.Key
	}
	seg := strconv.Itoa(index) + ":" + child.Name
	if parentID == RootKey {
		return seg
	}
	return parentID + "/" + seg
}

// Collapsed is the set of stable ids whose children are hidden.
type Collapsed map[string]struct{}

// Has reports whether id is collapsed. A nil set has nothing collapsed.
func (c Collapsed) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// Toggle flips the collapse state of the record r with stable id and
// reports whether it is now collapsed. Records without children are left
// alone.
func (c Collapsed) Toggle(id string, r *Record) bool {
	if !r.HasChildren() {
		return false
	}
	if c.Has(id) {
		delete(c, id)
		return false
	}
	c[id] = struct{}{}
	return true
}

// Walk visits every record below root in pre-order, collapsed or not,
// with its stable id and depth (0 for top level).
func Walk(root *Record, fn func(id string, r *Record, depth int)) {
	var visit func(r *Record, id string, depth int)
	visit = func(r *Record, id string, depth int) {
		fn(id, r, depth)
		for i, child := range r.Children {
			if child != nil {
				visit(child, childID(id, i, child), depth+1)
			}
		}
	}
	for i, child := range root.Children {
		if child != nil {
			visit(child, childID(RootKey, i, child), 0)
		}
	}
}

// MaxDepth is the depth of the deepest record below root, or -1 if there
// are none.
func MaxDepth(root *Record) int {
	deepest := -1
	Walk(root, func(_ string, _ *Record, depth int) {
		if depth > deepest {
			deepest = depth
		}
	})
	return deepest
}

// CollapseNamed collapses every record under root whose name is in names
// and that has children. It returns how many were collapsed.
func (c Collapsed) CollapseNamed(root *Record, names ...string) int {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	count := 0
	Walk(root, func(id string, r *Record, _ int) {
		if want[r.Name] && r.HasChildren() && !c.Has(id) {
			c[id] = struct{}{}
			count++
		}
	})
	return count
}
