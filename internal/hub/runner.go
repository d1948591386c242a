package hub

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dicklesworthstone/hoststat/internal/model"
)

// Refresher produces one snapshot per call. It is never called concurrently.
type Refresher interface {
	Refresh() model.Snapshot
}

// TickObserver is notified about the sampling loop.
type TickObserver interface {
	TickCompleted(d time.Duration)
	Discarded()
}

type nopTickObserver struct{}

func (nopTickObserver) TickCompleted(time.Duration) {}
func (nopTickObserver) Discarded()                  {}

// Runner drives a Refresher on a background goroutine and applies each
// snapshot to a Hub on a second, single consumer goroutine. Every Hub
// access, including visibility changes and queries, goes through that
// consumer.
type Runner struct {
	refresher Refresher
	hub       *Hub
	interval  time.Duration
	warmup    time.Duration
	log       logrus.FieldLogger
	observer  TickObserver

	updates  chan model.Snapshot
	requests chan request
	stopped  chan struct{}
}

type request struct {
	fn   func(*Hub)
	done chan struct{}
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithWarmup sets the delay between the priming refresh and the first
// delivered tick.
func WithWarmup(d time.Duration) RunnerOption { return func(r *Runner) { r.warmup = d } }

func WithLogger(l logrus.FieldLogger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

func WithTickObserver(o TickObserver) RunnerOption {
	return func(r *Runner) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewRunner ticks every interval. A non-positive interval panics, as a
// zero ticker would.
func NewRunner(refresher Refresher, hub *Hub, interval time.Duration, opts ...RunnerOption) *Runner {
	if interval <= 0 {
		panic("hub: interval must be > 0")
	}
	r := &Runner{
		refresher: refresher,
		hub:       hub,
		interval:  interval,
		warmup:    300 * time.Millisecond,
		log:       logrus.StandardLogger(),
		observer:  nopTickObserver{},
		updates:   make(chan model.Snapshot, 1),
		requests:  make(chan request),
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithField("component", "runner")
	return r
}

// Run samples and distributes until ctx is canceled. It must be called once.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.stopped)

	sampleDone := make(chan struct{})
	go func() {
		defer close(sampleDone)
		r.sampleLoop(ctx)
	}()

	r.log.WithField("interval", r.interval).Info("runner started")
	for {
		select {
		case <-ctx.Done():
			<-sampleDone
			r.drain()
			r.log.WithField("reason", ctx.Err()).Info("runner stopped")
			return nil
		case snap := <-r.updates:
			if ctx.Err() != nil {
				r.discard(snap)
				continue
			}
			r.hub.Apply(snap)
		case req := <-r.requests:
			req.fn(r.hub)
			close(req.done)
		}
	}
}

// sampleLoop primes the samplers, then refreshes once per interval. The
// next timer is armed only after the snapshot has been handed over, so a
// slow tick delays the following one instead of overlapping it.
func (r *Runner) sampleLoop(ctx context.Context) {
	r.refresher.Refresh()

	timer := time.NewTimer(r.warmup)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		start := time.Now()
		snap := r.refresher.Refresh()
		r.observer.TickCompleted(time.Since(start))

		select {
		case r.updates <- snap:
		case <-ctx.Done():
			r.discard(snap)
			return
		}
		timer.Reset(r.interval)
	}
}

func (r *Runner) drain() {
	for {
		select {
		case snap := <-r.updates:
			r.discard(snap)
		default:
			return
		}
	}
}

func (r *Runner) discard(snap model.Snapshot) {
	r.observer.Discarded()
	r.log.WithField("tick", snap.Tick).Debug("discarding snapshot after shutdown")
}

// do runs fn on the consumer goroutine and waits for it. It returns false
// if the Runner has stopped.
func (r *Runner) do(fn func(*Hub)) bool {
	req := request{fn: fn, done: make(chan struct{})}
	select {
	case r.requests <- req:
	case <-r.stopped:
		return false
	}
	select {
	case <-req.done:
		return true
	case <-r.stopped:
		return false
	}
}

// SetVisible reports the rich surface's visibility. When it becomes
// visible the rich subscriber has received the latest snapshot by the
// time SetVisible returns. It must not be called from inside a subscriber.
func (r *Runner) SetVisible(visible bool) {
	r.do(func(h *Hub) { h.SetVisible(visible) })
}

// Latest returns the most recently applied snapshot.
func (r *Runner) Latest() (snap model.Snapshot, ok bool) {
	r.do(func(h *Hub) { snap, ok = h.Latest() })
	return snap, ok
}

// History returns a copy of the named series.
func (r *Runner) History(name string) (values []float64) {
	r.do(func(h *Hub) { values = h.History(name) })
	return values
}

// State returns the current visibility state.
func (r *Runner) State() (state State) {
	r.do(func(h *Hub) { state = h.State() })
	return state
}
