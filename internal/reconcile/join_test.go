package reconcile

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart2svg/internal/scene"
)

type row struct {
	key   string
	width int
}

func rowKey(r row) string { return r.key }

func rows(keys ...string) []row {
	out := make([]row, len(keys))
	for i, k := range keys {
		out[i] = row{key: k, width: i}
	}
	return out
}

func handlers(entered *[]string) Handlers[row] {
	return Handlers[row]{
		Tag: "rect",
		Enter: func(el *scene.Element, r row) {
			el.SetAttr("class", "bar")
			*entered = append(*entered, r.key)
		},
		Apply: func(el *scene.Element, r row) {
			el.SetAttr("width", strconv.Itoa(r.width))
		},
	}
}

func liveKeys(parent *scene.Element) []string {
	var keys []string
	for _, c := range parent.Children() {
		if c.Key != "" {
			keys = append(keys, c.Key)
		}
	}
	sort.Strings(keys)
	return keys
}

func TestJoinEnterUpdateExit(t *testing.T) {
	parent := scene.NewElement("g")
	var entered []string
	h := handlers(&entered)

	st := Join(parent, rows("a", "b", "c"), rowKey, h)
	assert.Equal(t, Stats{Entered: 3}, st)
	assert.Equal(t, []string{"a", "b", "c"}, entered)
	b := parent.ChildByKey("b")
	require.NotNil(t, b)

	entered = nil
	st = Join(parent, rows("b", "d"), rowKey, h)
	assert.Equal(t, Stats{Entered: 1, Updated: 1, Exited: 2}, st)
	assert.Equal(t, []string{"d"}, entered, "enter runs only for new keys")
	assert.Same(t, b, parent.ChildByKey("b"), "updated in place")
	w, _ := b.Attr("width")
	assert.Equal(t, "0", w, "update applies the same attribute function")
	assert.Equal(t, []string{"b", "d"}, liveKeys(parent))

	st = Join(parent, nil, rowKey, h)
	assert.Equal(t, Stats{Exited: 2}, st)
	assert.Empty(t, parent.Children())
}

func TestJoinLeavesUnkeyedChildren(t *testing.T) {
	parent := scene.NewElement("g")
	label := parent.Append(scene.NewElement("text"))
	var entered []string

	Join(parent, rows("a"), rowKey, handlers(&entered))
	Join(parent, nil, rowKey, handlers(&entered))

	assert.Equal(t, []*scene.Element{label}, parent.Children())
}

func TestJoinCustomExit(t *testing.T) {
	parent := scene.NewElement("g")
	var entered, exited []string
	h := handlers(&entered)
	h.Exit = func(el *scene.Element) {
		exited = append(exited, el.Key)
		el.Remove()
	}

	Join(parent, rows("a", "b"), rowKey, h)
	Join(parent, rows("b"), rowKey, h)
	assert.Equal(t, []string{"a"}, exited)
}

func TestJoinDuplicateKeys(t *testing.T) {
	parent := scene.NewElement("g")
	var entered []string
	st := Join(parent, rows("a", "a"), rowKey, handlers(&entered))
	assert.Equal(t, 2, st.Entered)
	assert.Len(t, parent.Children(), 2)

	st = Join(parent, rows("a"), rowKey, handlers(&entered))
	assert.Equal(t, Stats{Updated: 1, Exited: 1}, st)
	assert.Len(t, parent.Children(), 1)
}

func TestJoinCoverageProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pick := func() []string {
		var keys []string
		for i := 0; i < 12; i++ {
			if rng.Intn(2) == 0 {
				keys = append(keys, "k"+strconv.Itoa(i))
			}
		}
		return keys
	}

	for iter := 0; iter < 100; iter++ {
		parent := scene.NewElement("g")
		var entered []string
		l1, l2 := pick(), pick()
		Join(parent, rows(l1...), rowKey, handlers(&entered))

		before := make(map[string]*scene.Element)
		for _, c := range parent.Children() {
			before[c.Key] = c
		}

		st := Join(parent, rows(l2...), rowKey, handlers(&entered))

		want := append([]string(nil), l2...)
		sort.Strings(want)
		assert.Equal(t, want, liveKeys(parent))

		updated := 0
		for _, k := range l2 {
			if el, ok := before[k]; ok {
				assert.Same(t, el, parent.ChildByKey(k), "key %s must survive in place", k)
				updated++
			}
		}
		assert.Equal(t, updated, st.Updated)
		assert.Equal(t, len(l2)-updated, st.Entered)
		assert.Equal(t, len(l1)-updated, st.Exited)
	}
}
