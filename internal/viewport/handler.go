package viewport

import "chart2svg/internal/logging"

// Handler owns the current transform and turns gesture events into
// constrained updates. Listeners run synchronously, in registration
// order, and only when the transform actually changes.
type Handler struct {
	zoom      Zoom
	current   Transform
	listeners []func(Transform)
	log       *logging.Logger
}

// NewHandler starts at Identity.
func NewHandler(z Zoom, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Handler{zoom: z, current: Identity, log: log}
}

// OnZoom registers fn to be called with every new transform.
func (h *Handler) OnZoom(fn func(Transform)) {
	h.listeners = append(h.listeners, fn)
}

// Transform returns the current transform.
func (h *Handler) Transform() Transform { return h.current }

// Zoom returns the limits in force.
func (h *Handler) Zoom() Zoom { return h.zoom }

// Wheel handles a wheel event at pointer position p.
func (h *Handler) Wheel(deltaY float64, p Point) {
	h.set(h.zoom.Wheel(h.current, deltaY, p))
}

// Drag pans by a pointer movement of (dx, dy) screen pixels.
func (h *Handler) Drag(dx, dy float64) {
	h.set(h.zoom.TranslateBy(h.current, dx/h.current.K, dy/h.current.K))
}

// ScaleBy zooms by factor about p, as a pinch or double click would.
func (h *Handler) ScaleBy(factor float64, p Point) {
	h.set(h.zoom.ScaleBy(h.current, factor, p))
}

// Set jumps to t after constraining it.
func (h *Handler) Set(t Transform) {
	h.set(h.zoom.Constrain(t))
}

// Reset returns to Identity.
func (h *Handler) Reset() {
	h.set(Identity)
}

func (h *Handler) set(t Transform) {
	if t == h.current {
		return
	}
	h.current = t
	if h.log.Enabled() {
		h.log.Debug("zoom", "transform", t.String())
	}
	for _, fn := range h.listeners {
		fn(t)
	}
}
