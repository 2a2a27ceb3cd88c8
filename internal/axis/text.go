package axis

import "strings"

// EstimateTextWidth approximates rendered text width in pixels. The
// average glyph is about 0.6 of the font size.
func EstimateTextWidth(text string, fontSize int) float64 {
	return float64(len([]rune(text))) * float64(fontSize) * 0.6
}

// Fit shortens text with a trailing ellipsis until its estimated width is
// at most maxWidth. Text that already fits is returned unchanged.
func Fit(text string, fontSize int, maxWidth float64) string {
	if EstimateTextWidth(text, fontSize) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		s := strings.TrimRight(string(runes[:n]), " ") + "…"
		if EstimateTextWidth(s, fontSize) <= maxWidth {
			return s
		}
	}
	return ""
}

// FitLabels applies Fit to every tick label of a.
func (a Axis) FitLabels(fontSize int, maxWidth float64) Axis {
	ticks := make([]Tick, len(a.Ticks))
	for i, t := range a.Ticks {
		t.Label = Fit(t.Label, fontSize, maxWidth)
		ticks[i] = t
	}
	a.Ticks = ticks
	return a
}
