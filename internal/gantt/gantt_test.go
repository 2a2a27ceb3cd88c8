package gantt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jan(d int) time.Time {
	return time.Date(2020, time.January, d, 0, 0, 0, 0, time.UTC)
}

func rec(name string, start, end int, children ...*Record) *Record {
	return &Record{Name: name, Start: jan(start), End: jan(end), Children: children}
}

func sequentialKeys() KeyFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("k%d", n)
	}
}

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Record.Name
	}
	return out
}

func depths(nodes []*Node) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.Depth
	}
	return out
}

func sampleTree() *Record {
	return NewRoot([]*Record{
		rec("A", 1, 10,
			rec("A1", 1, 3,
				rec("A1a", 1, 2),
			),
			rec("A2", 3, 10),
		),
		rec("B", 5, 12),
		rec("C", 2, 4,
			rec("C1", 2, 3),
		),
	})
}

func TestFlattenPreOrderAndDepth(t *testing.T) {
	f := NewFlattener(IdentityStable)
	nodes := f.Flatten(sampleTree(), nil)

	assert.Equal(t, []string{"A", "A1", "A1a", "A2", "B", "C", "C1"}, names(nodes))
	assert.Equal(t, []int{0, 1, 2, 1, 0, 0, 1}, depths(nodes))
}

func TestFlattenParentReferences(t *testing.T) {
	nodes := NewFlattener(IdentityStable).Flatten(sampleTree(), nil)
	byName := map[string]*Node{}
	for _, n := range nodes {
		byName[n.Record.Name] = n
	}

	assert.Nil(t, byName["A"].Parent)
	assert.Same(t, byName["A"], byName["A1"].Parent)
	assert.Same(t, byName["A1"], byName["A1a"].Parent)
	assert.Same(t, byName["C"], byName["C1"].Parent)
	for _, n := range nodes {
		assert.NotEqual(t, RootKey, n.Key, "synthetic root is never emitted")
	}
}

func TestFlattenStableKeys(t *testing.T) {
	root := NewRoot([]*Record{
		{Name: "A", Start: jan(1), End: jan(5), Key: "task-a", Children: []*Record{rec("B", 2, 3)}},
		rec("A", 1, 2),
	})
	f := NewFlattener(IdentityStable)

	first := f.Flatten(root, nil)
	second := f.Flatten(root, nil)

	require.Len(t, first, 3)
	assert.Equal(t, "#task-a", first[0].Key)
	assert.Equal(t, "#task-a/0:B", first[1].Key)
	assert.Equal(t, "1:A", first[2].Key, "same-name siblings get distinct ids")
	for i := range first {
		assert.Equal(t, first[i].Key, second[i].Key)
		assert.Equal(t, first[i].ID, first[i].Key)
	}
}

func TestFlattenPassScopedKeys(t *testing.T) {
	f := &Flattener{Mode: IdentityPass, NewKey: sequentialKeys()}
	root := sampleTree()

	first := f.Flatten(root, nil)
	second := f.Flatten(root, nil)

	require.Len(t, second, len(first))
	seen := map[string]bool{}
	for i := range first {
		assert.NotEqual(t, first[i].Key, second[i].Key, "keys are reassigned every pass")
		assert.Equal(t, first[i].ID, second[i].ID, "stable ids survive")
		seen[first[i].Key] = true
		seen[second[i].Key] = true
	}
	assert.Len(t, seen, 2*len(first))
}

func TestFlattenDefaultPassKeysAreUUIDs(t *testing.T) {
	nodes := NewFlattener(IdentityPass).Flatten(sampleTree(), nil)
	for _, n := range nodes {
		assert.Len(t, n.Key, 36)
	}
}

func TestCollapseRoundTrip(t *testing.T) {
	f := &Flattener{Mode: IdentityPass, NewKey: sequentialKeys()}
	root := sampleTree()
	collapsed := Collapsed{}

	before := f.Flatten(root, collapsed)
	a := before[0]

	assert.True(t, collapsed.Toggle(a.ID, a.Record))
	folded := f.Flatten(root, collapsed)
	assert.Equal(t, []string{"A", "B", "C", "C1"}, names(folded))

	assert.False(t, collapsed.Toggle(a.ID, a.Record))
	after := f.Flatten(root, collapsed)
	assert.Equal(t, names(before), names(after))
	for i := range before {
		assert.Equal(t, before[i].Record.Start, after[i].Record.Start)
		assert.Equal(t, before[i].Record.End, after[i].Record.End)
	}
}

func TestCollapseLeafHasNoEffect(t *testing.T) {
	collapsed := Collapsed{}
	leaf := rec("B", 5, 12)

	assert.False(t, collapsed.Toggle("1:B", leaf))
	assert.Empty(t, collapsed)
}

func TestCollapseEndToEnd(t *testing.T) {
	root := NewRoot([]*Record{rec("A", 1, 5, rec("B", 2, 3))})
	f := NewFlattener(IdentityStable)
	collapsed := Collapsed{}

	nodes := f.Flatten(root, collapsed)
	assert.Equal(t, []string{"A", "B"}, names(nodes))
	assert.Equal(t, []int{0, 1}, depths(nodes))

	collapsed.Toggle(nodes[0].ID, nodes[0].Record)
	assert.Equal(t, []string{"A"}, names(f.Flatten(root, collapsed)))

	collapsed.Toggle(nodes[0].ID, nodes[0].Record)
	assert.Equal(t, []string{"A", "B"}, names(f.Flatten(root, collapsed)))
}

func TestFlattenDoesNotMutateRecords(t *testing.T) {
	root := sampleTree()
	a := root.Children[0]
	children := a.Children

	collapsed := Collapsed{}
	nodes := NewFlattener(IdentityStable).Flatten(root, collapsed)
	collapsed.Toggle(nodes[0].ID, nodes[0].Record)
	NewFlattener(IdentityStable).Flatten(root, collapsed)

	assert.Equal(t, children, a.Children)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, NewFlattener(IdentityStable).Flatten(NewRoot(nil), nil))
}

func TestTimeExtent(t *testing.T) {
	nodes := NewFlattener(IdentityStable).Flatten(sampleTree(), nil)
	ext, err := TimeExtent(nodes)
	require.NoError(t, err)
	assert.Equal(t, [2]time.Time{jan(1), jan(12)}, ext)

	_, err = TimeExtent(nil)
	assert.ErrorIs(t, err, ErrEmptyTree)
}

func TestIndex(t *testing.T) {
	nodes := NewFlattener(IdentityStable).Flatten(sampleTree(), nil)
	idx := Index(nodes)
	require.Len(t, idx, len(nodes))
	assert.Equal(t, "B", idx["1:B"].Record.Name)
}

func TestFlattenCallerKeysNeverCollideWithPathIDs(t *testing.T) {
	root := NewRoot([]*Record{
		{Name: "A", Start: jan(1), End: jan(5), Key: "1:B", Children: []*Record{rec("C", 2, 3)}},
		rec("B", 1, 2),
		{Name: "D", Start: jan(1), End: jan(5), Key: RootKey, Children: []*Record{rec("E", 2, 3)}},
	})
	nodes := NewFlattener(IdentityStable).Flatten(root, nil)
	require.Len(t, nodes, 5)

	seen := make(map[string]bool)
	for _, n := range nodes {
		assert.False(t, seen[n.Key], "key %q repeated", n.Key)
		assert.NotEqual(t, RootKey, n.ID)
		seen[n.Key] = true
	}

	collapsed := Collapsed{}
	d := nodes[3]
	require.Equal(t, "D", d.Record.Name)
	assert.True(t, collapsed.Toggle(d.ID, d.Record))
	assert.Len(t, NewFlattener(IdentityStable).Flatten(root, collapsed), 4,
		"collapsing a record keyed like the root hides only its own children")
}

func TestCheckKeys(t *testing.T) {
	a := &Record{Name: "A", Start: jan(1), End: jan(2), Key: "x"}
	b := &Record{Name: "B", Start: jan(1), End: jan(2), Key: "x"}
	nested := &Record{Name: "P", Start: jan(1), End: jan(2), Children: []*Record{b}}

	assert.NoError(t, CheckKeys([]*Record{a, rec("A", 1, 2), rec("A", 1, 2)}))
	assert.ErrorIs(t, CheckKeys([]*Record{a, b}), ErrDuplicateKey)
	assert.ErrorIs(t, CheckKeys([]*Record{a, nested}), ErrDuplicateKey)
}

func TestLoadYAMLRejectsDuplicateKeys(t *testing.T) {
	in := `
- {name: A, start: 2020-01-01, end: 2020-01-02, key: x}
- {name: B, start: 2020-01-01, end: 2020-01-02, key: x}
`
	_, err := LoadYAML(strings.NewReader(in))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestLoadYAML(t *testing.T) {
	in := `
- name: Design
  start: 2020-01-01
  end: "2020-01-05"
  key: design
  children:
    - name: Sketch
      start: 2020-01-02
      end: 2020-01-03
- name: Build
  start: 2020-01-05T00:00:00Z
  end: 2020-01-09
`
	records, err := LoadYAML(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "design", records[0].Key)
	assert.Equal(t, jan(1), records[0].Start)
	assert.Equal(t, jan(5), records[0].End)
	require.Len(t, records[0].Children, 1)
	assert.Equal(t, "Sketch", records[0].Children[0].Name)
	assert.Equal(t, jan(9), records[1].End)
}

func TestLoadJSON(t *testing.T) {
	in := `[{"name": "A", "start": "2020-01-01", "end": "2020-01-05",
	         "children": [{"name": "B", "start": "2020-01-02", "end": "2020-01-03"}]}]`

	records, err := LoadYAML(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "B", records[0].Children[0].Name)
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{"bad date", "- name: A\n  start: someday\n  end: 2020-01-01\n", "malformed date"},
		{"inverted span", "- name: A\n  start: 2020-01-05\n  end: 2020-01-01\n", "ends before it starts"},
		{"not a sequence", "name: A\n", "error parsing gantt data"},
		{"null record", "- ~\n", "null record"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadYAMLEmpty(t *testing.T) {
	records, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: A\n  start: 2020-01-01\n  end: 2020-01-02\n"), 0644))

	records, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWalkVisitsCollapsedRecords(t *testing.T) {
	root := sampleTree()
	var seen []string
	var ids []string
	Walk(root, func(id string, r *Record, depth int) {
		seen = append(seen, fmt.Sprintf("%s@%d", r.Name, depth))
		ids = append(ids, id)
	})
	assert.Equal(t, []string{"A@0", "A1@1", "A1a@2", "A2@1", "B@0", "C@0", "C1@1"}, seen)

	nodes := NewFlattener(IdentityStable).Flatten(root, nil)
	for i, n := range nodes {
		assert.Equal(t, n.ID, ids[i], "walk and flatten agree on ids")
	}

	assert.Equal(t, 2, MaxDepth(root))
	assert.Equal(t, -1, MaxDepth(NewRoot(nil)))
}

func TestCollapseNamed(t *testing.T) {
	root := sampleTree()
	collapsed := Collapsed{}

	n := collapsed.CollapseNamed(root, "A1", "C", "B", "missing")
	assert.Equal(t, 2, n, "leaf B and unknown names are skipped")

	nodes := NewFlattener(IdentityStable).Flatten(root, collapsed)
	assert.Equal(t, []string{"A", "A1", "A2", "B", "C"}, names(nodes))

	assert.Equal(t, 0, collapsed.CollapseNamed(root, "A1"), "already collapsed")
}
