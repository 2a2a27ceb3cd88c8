package scale

import mscale "github.com/aclements/go-moremath/scale"

// Linear maps a numeric domain onto a pixel range. Range may be inverted
// (e.g. [height, 0]) so that larger values sit higher on screen.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinear returns a Linear scale over domain mapped onto rng.
func NewLinear(domain, rng [2]float64) Linear {
	return Linear{Domain: domain, Range: rng}
}

func (s Linear) linear() mscale.Linear {
	return mscale.Linear{Min: s.Domain[0], Max: s.Domain[1]}
}

// Map returns the pixel position of v.
func (s Linear) Map(v float64) float64 {
	return s.Range[0] + s.linear().Map(v)*(s.Range[1]-s.Range[0])
}

// Invert returns the domain value at pixel position px.
func (s Linear) Invert(px float64) float64 {
	if s.Range[0] == s.Range[1] {
		return s.Domain[0]
	}
	return s.linear().Unmap((px - s.Range[0]) / (s.Range[1] - s.Range[0]))
}

// WithRange returns a copy of s mapped onto rng.
func (s Linear) WithRange(rng [2]float64) Linear {
	s.Range = rng
	return s
}

// Nice widens the domain to round tick values for at most count ticks.
func (s Linear) Nice(count int) Linear {
	lin := s.linear()
	lin.Nice(mscale.TickOptions{Max: count})
	if s.Domain[0] > s.Domain[1] {
		lin.Min, lin.Max = lin.Max, lin.Min
	}
	s.Domain = [2]float64{lin.Min, lin.Max}
	return s
}

// Ticks returns at most count round values within the domain, ascending.
func (s Linear) Ticks(count int) []float64 {
	major, _ := s.linear().Ticks(mscale.TickOptions{Max: count})
	return major
}
