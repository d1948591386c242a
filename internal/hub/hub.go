// Package hub hands completed snapshots from the sampling loop to the
// display surfaces: a lightweight subscriber that sees every tick and a
// rich subscriber gated by a visibility flag.
package hub

import (
	"github.com/Dicklesworthstone/hoststat/internal/history"
	"github.com/Dicklesworthstone/hoststat/internal/model"
)

// State is the visibility of the rich surface.
type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Subscriber names used for delivery accounting.
const (
	SubscriberLight = "light"
	SubscriberRich  = "rich"
)

// RichUpdate is everything the rich surface renders.
type RichUpdate struct {
	Snapshot model.Snapshot
	History  map[string][]float64
	Top      []model.Process
	Host     model.Host
}

// LightFunc receives every snapshot with the CPU history.
type LightFunc func(snap model.Snapshot, cpuHistory []float64)

// RichFunc receives full updates while the rich surface is visible.
type RichFunc func(RichUpdate)

// Observer is notified of deliveries and transitions.
type Observer interface {
	Delivered(subscriber string)
	VisibilityChanged(visible bool)
}

type nopObserver struct{}

func (nopObserver) Delivered(string)       {}
func (nopObserver) VisibilityChanged(bool) {}

// Hub owns the latest snapshot and the history. It is not safe for
// concurrent use; Runner serializes all calls onto one goroutine.
type Hub struct {
	history  *history.Set
	light    LightFunc
	rich     RichFunc
	host     model.Host
	observer Observer

	state     State
	latest    model.Snapshot
	hasLatest bool
}

// Option customizes a Hub.
type Option func(*Hub)

// WithHost attaches static host information to rich updates.
func WithHost(h model.Host) Option { return func(hb *Hub) { hb.host = h } }

// WithObserver sets the delivery observer.
func WithObserver(o Observer) Option {
	return func(hb *Hub) {
		if o != nil {
			hb.observer = o
		}
	}
}

// New returns a Hub in the Hidden state. Either subscriber may be nil.
func New(h *history.Set, light LightFunc, rich RichFunc, opts ...Option) *Hub {
	hb := &Hub{
		history:  h,
		light:    light,
		rich:     rich,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(hb)
	}
	return hb
}

// Apply records snap and delivers it. The lightweight subscriber is
// always called; the rich one only while Visible.
func (h *Hub) Apply(snap model.Snapshot) {
	h.latest = snap
	h.hasLatest = true
	h.history.Append(snap)

	if h.light != nil {
		h.light(snap.Clone(), h.history.Values(history.SeriesCPU))
		h.observer.Delivered(SubscriberLight)
	}
	if h.state == Visible {
		h.deliverRich()
	}
}

// SetVisible moves between Hidden and Visible. Becoming visible
// re-delivers the latest snapshot right away, before returning.
func (h *Hub) SetVisible(visible bool) {
	next := Hidden
	if visible {
		next = Visible
	}
	if next == h.state {
		return
	}
	h.state = next
	h.observer.VisibilityChanged(visible)
	if next == Visible && h.hasLatest {
		h.deliverRich()
	}
}

func (h *Hub) State() State { return h.state }

// Latest returns the most recently applied snapshot.
func (h *Hub) Latest() (model.Snapshot, bool) {
	return h.latest.Clone(), h.hasLatest
}

// History returns a copy of the named series.
func (h *Hub) History(name string) []float64 {
	return h.history.Values(name)
}

func (h *Hub) deliverRich() {
	if h.rich == nil {
		return
	}
	snap := h.latest.Clone()
	h.rich(RichUpdate{
		Snapshot: snap,
		History:  h.history.All(),
		Top:      snap.Top,
		Host:     h.host,
	})
	h.observer.Delivered(SubscriberRich)
}
