package scene

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

// Clock reports the current time. Documents use it to start and sample
// transitions; tests inject a fixed one.
type Clock func() time.Time

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(u float64) float64

// CubicInOut accelerates through the first half and decelerates through
// the second.
func CubicInOut(u float64) float64 {
	if u < 0.5 {
		return 4 * u * u * u
	}
	return 1 - math.Pow(-2*u+2, 3)/2
}

// Transition animates a set of attributes of one element from sampled
// start values to targets over Duration. An element has at most one;
// starting another retargets from wherever the old one had got to.
type Transition struct {
	Start    time.Time
	Duration time.Duration
	Ease     Ease

	from map[string]string
	to   map[string]string
}

func (t *Transition) progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	u := float64(now.Sub(t.Start)) / float64(t.Duration)
	return math.Max(0, math.Min(1, u))
}

// Done reports whether t has reached its targets at now.
func (t *Transition) Done(now time.Time) bool {
	return t.progress(now) >= 1
}

func (t *Transition) sample(name string, now time.Time) (string, bool) {
	to, ok := t.to[name]
	if !ok {
		return "", false
	}
	u := t.progress(now)
	if u >= 1 {
		return to, true
	}
	return interpolate(t.from[name], to, t.Ease(u)), true
}

func (t *Transition) drop(name string) {
	delete(t.from, name)
	delete(t.to, name)
}

// TransitionTo animates attrs to their new values over dur, starting at
// now. Attributes already in flight start from their sampled value at now;
// attributes with no prior value appear at their target. Attributes of an
// interrupted transition that are not retargeted keep heading for their
// old targets on the new timeline. A non-positive dur sets attrs at once.
func (e *Element) TransitionTo(now time.Time, dur time.Duration, attrs ...Attr) {
	next := &Transition{
		Start:    now,
		Duration: dur,
		Ease:     CubicInOut,
		from:     make(map[string]string),
		to:       make(map[string]string),
	}
	if e.tr != nil && !e.tr.Done(now) {
		for name, to := range e.tr.to {
			next.from[name] = e.AttrAt(name, now)
			next.to[name] = to
		}
	}
	for _, a := range attrs {
		from := a.Value
		if _, ok := e.attrs[a.Name]; ok {
			from = e.AttrAt(a.Name, now)
		}
		next.from[a.Name] = from
		next.to[a.Name] = a.Value
	}
	for _, a := range attrs {
		e.set(a.Name, a.Value)
	}
	if dur <= 0 {
		e.tr = nil
		return
	}
	e.tr = next
}

// Transition returns the element's transition, or nil.
func (e *Element) Transition() *Transition { return e.tr }

// Animating reports whether a transition is still running at now.
func (e *Element) Animating(now time.Time) bool {
	return e.tr != nil && !e.tr.Done(now)
}

// Interrupt cancels the transition, freezing attributes where they are
// at now.
func (e *Element) Interrupt(now time.Time) {
	if e.tr == nil {
		return
	}
	for name := range e.tr.to {
		e.attrs[name] = e.AttrAt(name, now)
	}
	e.tr = nil
}

// Settle cancels the transition, jumping attributes to their targets.
func (e *Element) Settle() {
	e.tr = nil
}

var numberRE = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

// interpolate blends the numbers embedded in a and b, which must share
// the same non-numeric skeleton (as path data or transforms of the same
// shape do). Values that do not line up jump straight to b.
func interpolate(a, b string, u float64) string {
	if a == b {
		return b
	}
	an := numberRE.FindAllStringIndex(a, -1)
	bn := numberRE.FindAllStringIndex(b, -1)
	if len(an) == 0 || len(an) != len(bn) {
		return b
	}
	out := make([]byte, 0, len(b))
	prevA, prevB := 0, 0
	for i := range bn {
		if a[prevA:an[i][0]] != b[prevB:bn[i][0]] {
			return b
		}
		out = append(out, b[prevB:bn[i][0]]...)
		x, errA := strconv.ParseFloat(a[an[i][0]:an[i][1]], 64)
		y, errB := strconv.ParseFloat(b[bn[i][0]:bn[i][1]], 64)
		if errA != nil || errB != nil {
			return b
		}
		out = strconv.AppendFloat(out, x+(y-x)*u, 'f', -1, 64)
		prevA, prevB = an[i][1], bn[i][1]
	}
	if a[prevA:] != b[prevB:] {
		return b
	}
	return string(append(out, b[prevB:]...))
}
