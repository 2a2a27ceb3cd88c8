// Package viewport turns zoom and pan gestures into an affine transform
// that is constrained to stay inside the plot rectangle.
package viewport

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a position in plot pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle from Min to Max.
type Rect struct {
	Min, Max Point
}

// NewRect returns the rectangle [0,0]..[w,h].
func NewRect(w, h float64) Rect {
	return Rect{Max: Point{X: w, Y: h}}
}

// Transform is a uniform scale K followed by a translation (X, Y):
// a point p maps to p*K + (X, Y).
type Transform struct {
	K, X, Y float64
}

// Identity is the unzoomed transform.
var Identity = Transform{K: 1}

// Apply maps p through t.
func (t Transform) Apply(p Point) Point {
	return Point{X: t.ApplyX(p.X), Y: t.ApplyY(p.Y)}
}

func (t Transform) ApplyX(x float64) float64 { return x*t.K + t.X }

func (t Transform) ApplyY(y float64) float64 { return y*t.K + t.Y }

// Invert maps a transformed point back to its original position.
func (t Transform) Invert(p Point) Point {
	return Point{X: t.InvertX(p.X), Y: t.InvertY(p.Y)}
}

func (t Transform) InvertX(x float64) float64 { return (x - t.X) / t.K }

func (t Transform) InvertY(y float64) float64 { return (y - t.Y) / t.K }

// Translate shifts t by (x, y) in untransformed units.
func (t Transform) Translate(x, y float64) Transform {
	if x == 0 && y == 0 {
		return t
	}
	return Transform{K: t.K, X: t.X + t.K*x, Y: t.Y + t.K*y}
}

// String renders t as an SVG transform attribute value.
func (t Transform) String() string {
	return fmt.Sprintf("translate(%s,%s) scale(%s)", num(t.X), num(t.Y), num(t.K))
}

// Parse reads a transform written as "k" or "k,ty", the short form used on
// the command line. The translation is vertical only.
func Parse(s string) (Transform, error) {
	ks, tys, hasY := strings.Cut(strings.TrimSpace(s), ",")
	k, err := strconv.ParseFloat(strings.TrimSpace(ks), 64)
	if err != nil {
		return Transform{}, fmt.Errorf("invalid zoom %q: want k or k,ty", s)
	}
	var ty float64
	if hasY {
		if ty, err = strconv.ParseFloat(strings.TrimSpace(tys), 64); err != nil {
			return Transform{}, fmt.Errorf("invalid zoom %q: want k or k,ty", s)
		}
	}
	if k <= 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return Transform{}, fmt.Errorf("invalid zoom %q: scale must be positive", s)
	}
	return Transform{K: k, Y: ty}, nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
