package scale

import "time"

// Interval is a tick spacing on the calendar: either a fixed duration
// aligned to an anchor instant, or a whole number of months aligned to
// the start of year 0. All arithmetic is in UTC.
type Interval struct {
	Name   string
	Every  time.Duration // fixed spacing; zero for calendar intervals
	Months int           // calendar spacing in months; zero for fixed intervals
	anchor time.Time
}

var (
	epoch = time.Unix(0, 0).UTC()
	// 1970-01-04 was a Sunday; weeks start on Sunday.
	firstSunday = time.Date(1970, time.January, 4, 0, 0, 0, 0, time.UTC)
)

func fixed(name string, d time.Duration) Interval {
	return Interval{Name: name, Every: d, anchor: epoch}
}

func monthly(name string, months int) Interval {
	return Interval{Name: name, Months: months}
}

// intervals is the ladder searched by tick-level selection, ordered from
// densest to sparsest.
var intervals = []Interval{
	fixed("1s", time.Second),
	fixed("5s", 5*time.Second),
	fixed("15s", 15*time.Second),
	fixed("30s", 30*time.Second),
	fixed("1m", time.Minute),
	fixed("5m", 5*time.Minute),
	fixed("15m", 15*time.Minute),
	fixed("30m", 30*time.Minute),
	fixed("1h", time.Hour),
	fixed("3h", 3*time.Hour),
	fixed("6h", 6*time.Hour),
	fixed("12h", 12*time.Hour),
	fixed("1d", 24*time.Hour),
	fixed("2d", 48*time.Hour),
	{Name: "1w", Every: 7 * 24 * time.Hour, anchor: firstSunday},
	monthly("1mo", 1),
	monthly("3mo", 3),
	monthly("6mo", 6),
	monthly("1y", 12),
	monthly("2y", 24),
	monthly("5y", 60),
	monthly("10y", 120),
	monthly("20y", 240),
	monthly("50y", 600),
	monthly("100y", 1200),
	monthly("1000y", 12000),
}

// avgMonth is the mean Gregorian month, 30.436875 days.
const avgMonth = 2629746 * time.Second

func (iv Interval) approx() time.Duration {
	if iv.Months > 0 {
		return time.Duration(iv.Months) * avgMonth
	}
	return iv.Every
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func monthIndex(t time.Time) int64 {
	t = t.UTC()
	return int64(t.Year())*12 + int64(t.Month()) - 1
}

func monthStart(m int64) time.Time {
	year := floorDiv(m, 12)
	month := m - year*12
	return time.Date(int(year), time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
}

// floor returns the last interval boundary at or before t.
func (iv Interval) floor(t time.Time) time.Time {
	if iv.Months > 0 {
		k := int64(iv.Months)
		return monthStart(floorDiv(monthIndex(t), k) * k)
	}
	n := floorDiv(int64(t.Sub(iv.anchor)), int64(iv.Every))
	return iv.anchor.Add(time.Duration(n) * iv.Every)
}

// ceil returns the first interval boundary at or after t.
func (iv Interval) ceil(t time.Time) time.Time {
	f := iv.floor(t)
	if f.Equal(t) {
		return f
	}
	return iv.next(f)
}

func (iv Interval) next(t time.Time) time.Time {
	if iv.Months > 0 {
		return monthStart(monthIndex(t) + int64(iv.Months))
	}
	return t.Add(iv.Every)
}

// count is the number of boundaries in [lo, hi], computed without
// materializing them.
func (iv Interval) count(lo, hi time.Time) int {
	first, last := iv.ceil(lo), iv.floor(hi)
	if last.Before(first) {
		return 0
	}
	if iv.Months > 0 {
		return int((monthIndex(last)-monthIndex(first))/int64(iv.Months)) + 1
	}
	return int(last.Sub(first)/iv.Every) + 1
}

// ticks lists the boundaries in [lo, hi].
func (iv Interval) ticks(lo, hi time.Time) []time.Time {
	var out []time.Time
	for t := iv.ceil(lo); !t.After(hi); t = iv.next(t) {
		out = append(out, t)
	}
	return out
}
