package viewport

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart2svg/internal/logging"
)

const (
	w = 725.0
	h = 565.0
)

func plotZoom() Zoom { return NewZoom(w, h, 1, 4) }

func TestTransformApplyInvert(t *testing.T) {
	tr := Transform{K: 2, X: 10, Y: -20}
	p := Point{X: 3, Y: 4}

	assert.Equal(t, Point{X: 16, Y: -12}, tr.Apply(p))
	assert.Equal(t, p, tr.Invert(tr.Apply(p)))
	assert.Equal(t, 5.0, Identity.ApplyY(5))
	assert.Equal(t, Transform{K: 2, X: 12, Y: -10}, tr.Translate(1, 5))
	assert.Equal(t, "translate(10,-20) scale(2)", tr.String())
	assert.Equal(t, "translate(0,0) scale(1)", Identity.String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Transform
		wantErr bool
	}{
		{in: "2,-100", want: Transform{K: 2, Y: -100}},
		{in: "1.5", want: Transform{K: 1.5}},
		{in: " 3 , 20 ", want: Transform{K: 3, Y: 20}},
		{in: "x", wantErr: true},
		{in: "0", wantErr: true},
		{in: "-1,0", wantErr: true},
		{in: "2,x", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWheelZoomsAboutPointer(t *testing.T) {
	z := plotZoom()
	centre := Point{X: w / 2, Y: h / 2}

	got := z.Wheel(Identity, -500, centre)

	assert.Equal(t, Transform{K: 2, X: -362.5, Y: -282.5}, got)
	assert.Equal(t, centre, got.Apply(centre), "point under the pointer stays put")
	assert.Equal(t, 847.5, got.ApplyY(h))
	assert.Equal(t, -282.5, got.ApplyY(0))
}

func TestScaleExtent(t *testing.T) {
	z := plotZoom()
	centre := Point{X: w / 2, Y: h / 2}

	out := z.Wheel(Identity, 500, centre)
	assert.Equal(t, Identity, out, "cannot zoom out past 1")

	in := z.ScaleBy(Identity, 10, centre)
	assert.Equal(t, 4.0, in.K)

	clamped := z.Constrain(Transform{K: 10})
	assert.Equal(t, 4.0, clamped.K)
}

func TestPanNeverExposesOutsidePlot(t *testing.T) {
	z := plotZoom()

	assert.Equal(t, Identity, z.TranslateBy(Identity, 0, 50), "no room to pan when unzoomed")

	zoomed := Transform{K: 2, X: -362.5, Y: -282.5}
	assert.Equal(t, Transform{K: 2, X: -362.5, Y: -182.5}, z.TranslateBy(zoomed, 0, 50))
	assert.Equal(t, Transform{K: 2, X: -362.5, Y: 0}, z.TranslateBy(zoomed, 0, 500))
	assert.Equal(t, Transform{K: 2, X: -362.5, Y: -h}, z.TranslateBy(zoomed, 0, -500))
}

func TestConstrainProperty(t *testing.T) {
	z := plotZoom()
	rng := rand.New(rand.NewSource(1))
	tr := Identity
	for i := 0; i < 500; i++ {
		p := Point{X: rng.Float64() * w, Y: rng.Float64() * h}
		switch rng.Intn(3) {
		case 0:
			tr = z.Wheel(tr, rng.Float64()*1200-600, p)
		case 1:
			tr = z.TranslateBy(tr, rng.Float64()*400-200, rng.Float64()*400-200)
		default:
			tr = z.ScaleBy(tr, rng.Float64()*3, p)
		}
		require.GreaterOrEqual(t, tr.K, 1.0)
		require.LessOrEqual(t, tr.K, 4.0)
		require.GreaterOrEqual(t, tr.InvertY(0), -1e-9)
		require.LessOrEqual(t, tr.InvertY(h), h+1e-9)
		require.GreaterOrEqual(t, tr.InvertX(0), -1e-9)
		require.LessOrEqual(t, tr.InvertX(w), w+1e-9)
	}
}

func TestHandler(t *testing.T) {
	hd := NewHandler(plotZoom(), nil)
	var seen []Transform
	hd.OnZoom(func(tr Transform) { seen = append(seen, tr) })

	hd.Wheel(500, Point{X: 10, Y: 10})
	assert.Empty(t, seen, "no event when the transform does not change")

	hd.Wheel(-500, Point{X: w / 2, Y: h / 2})
	require.Len(t, seen, 1)
	assert.Equal(t, 2.0, hd.Transform().K)

	hd.Drag(0, 100)
	require.Len(t, seen, 2)
	assert.Equal(t, -182.5, hd.Transform().Y)

	hd.Set(Transform{K: 3, Y: 1000})
	assert.Equal(t, 0.0, hd.Transform().Y)

	hd.Reset()
	assert.Equal(t, Identity, hd.Transform())
	assert.Equal(t, Identity, seen[len(seen)-1])
}

func TestHandlerLogsZoomOnlyAtDebug(t *testing.T) {
	var info, debug bytes.Buffer
	quiet := NewHandler(plotZoom(), logging.NewLogger(&info, logging.LevelInfo, false))
	loud := NewHandler(plotZoom(), logging.NewLogger(&debug, logging.LevelDebug, false))

	quiet.ScaleBy(2, Point{})
	loud.ScaleBy(2, Point{})

	assert.Empty(t, info.String())
	assert.Contains(t, debug.String(), `msg=zoom transform="translate(0,0) scale(2)"`)
}
