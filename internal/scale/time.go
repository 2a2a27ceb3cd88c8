// Package scale maps data values onto pixel positions.
//
// Continuous scales (Time, Linear) are built on go-moremath's normalizing
// scale.Linear and its tick-level search; Band partitions a pixel range into
// equal slots for categorical keys.
package scale

import (
	"math"
	"time"

	mscale "github.com/aclements/go-moremath/scale"
)

// Time maps instants onto a pixel range. The zero value is unusable; build
// one with NewTime.
type Time struct {
	Domain [2]time.Time
	Range  [2]float64
}

// NewTime returns a Time scale over domain mapped onto rng.
func NewTime(domain [2]time.Time, rng [2]float64) Time {
	return Time{Domain: domain, Range: rng}
}

func seconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func fromSeconds(s float64) time.Time {
	sec, frac := math.Modf(s)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
}

func (s Time) linear() mscale.Linear {
	return mscale.Linear{Min: seconds(s.Domain[0]), Max: seconds(s.Domain[1])}
}

// Map returns the pixel position of t. A degenerate domain maps everything
// to the middle of the range.
func (s Time) Map(t time.Time) float64 {
	return s.Range[0] + s.linear().Map(seconds(t))*(s.Range[1]-s.Range[0])
}

// Invert returns the instant at pixel position px.
func (s Time) Invert(px float64) time.Time {
	if s.Range[0] == s.Range[1] {
		return s.Domain[0]
	}
	u := (px - s.Range[0]) / (s.Range[1] - s.Range[0])
	return fromSeconds(s.linear().Unmap(u))
}

// WithRange returns a copy of s mapped onto rng.
func (s Time) WithRange(rng [2]float64) Time {
	s.Range = rng
	return s
}

// Nice widens the domain outwards to the boundaries of the tick interval
// chosen for count ticks.
func (s Time) Nice(count int) Time {
	lo, hi := s.ordered()
	iv, ok := s.interval(count)
	if !ok {
		return s
	}
	lo, hi = iv.floor(lo), iv.ceil(hi)
	if s.Domain[0].After(s.Domain[1]) {
		lo, hi = hi, lo
	}
	s.Domain = [2]time.Time{lo, hi}
	return s
}

// Ticks returns at most count instants on a calendar-aligned interval
// within the domain, in increasing order.
func (s Time) Ticks(count int) []time.Time {
	lo, hi := s.ordered()
	if lo.Equal(hi) {
		return []time.Time{lo}
	}
	iv, ok := s.interval(count)
	if !ok {
		return nil
	}
	return iv.ticks(lo, hi)
}

// TickInterval reports the interval Ticks(count) would use.
func (s Time) TickInterval(count int) (Interval, bool) {
	return s.interval(count)
}

func (s Time) ordered() (time.Time, time.Time) {
	if s.Domain[0].After(s.Domain[1]) {
		return s.Domain[1], s.Domain[0]
	}
	return s.Domain[0], s.Domain[1]
}

func (s Time) interval(count int) (Interval, bool) {
	if count < 1 {
		return Interval{}, false
	}
	lo, hi := s.ordered()
	t := timeTicker{lo: lo, hi: hi}
	opts := mscale.TickOptions{Max: count, MinLevel: 0, MaxLevel: len(intervals) - 1}
	level, ok := opts.FindLevel(t, t.guess(count))
	if !ok {
		return Interval{}, false
	}
	return intervals[level], true
}

// timeTicker adapts the interval ladder to go-moremath's Ticker so that
// TickOptions.FindLevel can pick the densest interval within the budget.
type timeTicker struct {
	lo, hi time.Time
}

func (t timeTicker) CountTicks(level int) int {
	return intervals[level].count(t.lo, t.hi)
}

func (t timeTicker) TicksAtLevel(level int) interface{} {
	ticks := intervals[level].ticks(t.lo, t.hi)
	out := make([]float64, len(ticks))
	for i, tk := range ticks {
		out[i] = seconds(tk)
	}
	return out
}

// guess starts the level search at the interval nearest span/count.
func (t timeTicker) guess(count int) int {
	target := t.hi.Sub(t.lo) / time.Duration(count)
	for i, iv := range intervals {
		if iv.approx() >= target {
			return i
		}
	}
	return len(intervals) - 1
}
