package gantt

import (
	"time"

	"github.com/google/uuid"
)

// Identity modes, mirroring config.IdentityStable and config.IdentityPass.
const (
	IdentityStable = "stable"
	IdentityPass   = "pass"
)

// KeyFunc produces a fresh unique key.
type KeyFunc func() string

// Node is one visible row produced by a flatten pass. Nodes are rebuilt
// from scratch on every pass and never patched.
type Node struct {
	Depth  int
	Record *Record
	Parent *Node // nil for top-level records

	// ID is the stable id of Record: its caller key prefixed with "#",
	// or its name path.
	ID string
	// Key identifies the row for reconciliation. It equals ID in stable
	// mode and is freshly generated on every pass in pass mode.
	Key string
}

// Flattener turns the visible part of a record tree into rows.
type Flattener struct {
	Mode   string
	NewKey KeyFunc
}

// NewFlattener returns a Flattener for mode, generating pass-scoped keys
// with uuid.
func NewFlattener(mode string) *Flattener {
	return &Flattener{Mode: mode, NewKey: uuid.NewString}
}

// Flatten walks root in pre-order through visible children only. The
// synthetic root itself is not emitted; its children have depth 0.
func (f *Flattener) Flatten(root *Record, collapsed Collapsed) []*Node {
	var nodes []*Node
	var visit func(r *Record, id string, parent *Node, depth int)
	visit = func(r *Record, id string, parent *Node, depth int) {
		n := &Node{Depth: depth, Record: r, Parent: parent, ID: id, Key: f.key(id)}
		nodes = append(nodes, n)
		for i, child := range r.VisibleChildren(id, collapsed) {
			if child == nil {
				continue
			}
			visit(child, childID(id, i, child), n, depth+1)
		}
	}

	for i, child := range root.VisibleChildren(RootKey, collapsed) {
		if child == nil {
			continue
		}
		visit(child, childID(RootKey, i, child), nil, 0)
	}
	return nodes
}

func (f *Flattener) key(id string) string {
	if f.Mode == IdentityPass {
		return f.NewKey()
	}
	return id
}

// TimeExtent returns [earliest start, latest end] over nodes.
func TimeExtent(nodes []*Node) ([2]time.Time, error) {
	if len(nodes) == 0 {
		return [2]time.Time{}, ErrEmptyTree
	}
	lo, hi := nodes[0].Record.Start, nodes[0].Record.End
	for _, n := range nodes[1:] {
		if n.Record.Start.Before(lo) {
			lo = n.Record.Start
		}
		if n.Record.End.After(hi) {
			hi = n.Record.End
		}
	}
	return [2]time.Time{lo, hi}, nil
}

// Index maps flatten keys to their nodes.
func Index(nodes []*Node) map[string]*Node {
	m := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		m[n.Key] = n
	}
	return m
}
