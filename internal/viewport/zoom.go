package viewport

import "math"

// WheelFactor converts wheel delta units into a zoom exponent: each unit
// zooms by 2^-0.002.
const WheelFactor = 0.002

// Zoom holds the limits a transform must respect.
type Zoom struct {
	ScaleExtent [2]float64
	// Extent is the viewport, usually the plot rectangle.
	Extent Rect
	// TranslateExtent is the world area that may be shown.
	TranslateExtent Rect
}

// NewZoom limits scale to [minK, maxK] and panning to the w x h plot.
func NewZoom(w, h, minK, maxK float64) Zoom {
	r := NewRect(w, h)
	return Zoom{ScaleExtent: [2]float64{minK, maxK}, Extent: r, TranslateExtent: r}
}

func (z Zoom) clampScale(k float64) float64 {
	return math.Max(z.ScaleExtent[0], math.Min(z.ScaleExtent[1], k))
}

// ScaleTo zooms t to scale k, keeping the world point under p fixed on
// screen.
func (z Zoom) ScaleTo(t Transform, k float64, p Point) Transform {
	world := t.Invert(p)
	k = z.clampScale(k)
	s := Transform{K: k, X: p.X - world.X*k, Y: p.Y - world.Y*k}
	return z.Constrain(s)
}

// ScaleBy multiplies t's scale by factor about p.
func (z Zoom) ScaleBy(t Transform, factor float64, p Point) Transform {
	return z.ScaleTo(t, t.K*factor, p)
}

// TranslateBy pans t by (dx, dy) in world units.
func (z Zoom) TranslateBy(t Transform, dx, dy float64) Transform {
	return z.Constrain(t.Translate(dx, dy))
}

// Wheel applies a wheel event with vertical delta deltaY at p. Positive
// deltas zoom out.
func (z Zoom) Wheel(t Transform, deltaY float64, p Point) Transform {
	return z.ScaleBy(t, math.Pow(2, -deltaY*WheelFactor), p)
}

// Constrain clamps t's scale to ScaleExtent, then shifts it so the viewport
// shows nothing outside TranslateExtent. A viewport larger than the
// translate extent is centred on it.
func (z Zoom) Constrain(t Transform) Transform {
	if k := z.clampScale(t.K); k != t.K {
		c := Point{X: (z.Extent.Min.X + z.Extent.Max.X) / 2, Y: (z.Extent.Min.Y + z.Extent.Max.Y) / 2}
		w := t.Invert(c)
		t = Transform{K: k, X: c.X - w.X*k, Y: c.Y - w.Y*k}
	}
	dx0 := t.InvertX(z.Extent.Min.X) - z.TranslateExtent.Min.X
	dx1 := t.InvertX(z.Extent.Max.X) - z.TranslateExtent.Max.X
	dy0 := t.InvertY(z.Extent.Min.Y) - z.TranslateExtent.Min.Y
	dy1 := t.InvertY(z.Extent.Max.Y) - z.TranslateExtent.Max.Y
	return t.Translate(shift(dx0, dx1), shift(dy0, dy1))
}

// shift returns the world-unit correction along one axis. dx0 and dx1 are
// how far the viewport's low and high edges sit past the allowed ones.
func shift(d0, d1 float64) float64 {
	if d1 > d0 {
		return (d0 + d1) / 2
	}
	if m := math.Min(0, d0); m != 0 {
		return m
	}
	return math.Max(0, d1)
}
