package scale

// Band splits a pixel range into equal, adjacent slots, one per key, in
// domain order. There is no inner or outer padding.
type Band struct {
	Domain []string
	Range  [2]float64
	index  map[string]int
}

// NewBand returns a Band over keys mapped onto rng. Duplicate keys keep
// their first slot.
func NewBand(keys []string, rng [2]float64) Band {
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		if _, ok := index[k]; !ok {
			index[k] = i
		}
	}
	return Band{Domain: keys, Range: rng, index: index}
}

// Bandwidth is the size of each slot; zero for an empty domain.
func (b Band) Bandwidth() float64 {
	if len(b.Domain) == 0 {
		return 0
	}
	return (b.Range[1] - b.Range[0]) / float64(len(b.Domain))
}

// Pos returns the start of key's slot.
func (b Band) Pos(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.Range[0] + float64(i)*b.Bandwidth(), true
}

// Center returns the middle of key's slot, where its tick sits.
func (b Band) Center(key string) (float64, bool) {
	p, ok := b.Pos(key)
	return p + b.Bandwidth()/2, ok
}
