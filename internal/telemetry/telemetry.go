// Package telemetry instruments the sampling engine with Prometheus
// metrics. It describes the engine itself, not the host being sampled.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Dicklesworthstone/hoststat/internal/sampler"
)

const (
	namespace         = "hoststat"
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 2 * time.Second
)

// Metrics owns a private registry. It satisfies sampler.Reporter,
// hub.Observer and hub.TickObserver.
type Metrics struct {
	registry *prometheus.Registry
	next     sampler.Reporter

	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	readFailures *prometheus.CounterVec
	deliveries   *prometheus.CounterVec
	discarded    prometheus.Counter
	richVisible  prometheus.Gauge
}

// New creates the collectors. Read failures are also forwarded to next,
// which may be nil.
func New(next sampler.Reporter) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		next:     next,
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total sampling ticks completed.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent producing one snapshot.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		readFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_failures_total",
			Help:      "Environment reads that failed, by domain.",
		}, []string{"domain"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Snapshots delivered, by subscriber.",
		}, []string{"subscriber"}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discarded_snapshots_total",
			Help:      "Snapshots dropped because the engine was shutting down.",
		}),
		richVisible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rich_visible",
			Help:      "1 while the rich subscriber is visible.",
		}),
	}
	m.registry.MustRegister(m.ticks, m.tickDuration, m.readFailures, m.deliveries, m.discarded, m.richVisible)
	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ReadFailed(domain string, err error) {
	m.readFailures.WithLabelValues(domain).Inc()
	if m.next != nil {
		m.next.ReadFailed(domain, err)
	}
}

func (m *Metrics) Delivered(subscriber string) {
	m.deliveries.WithLabelValues(subscriber).Inc()
}

func (m *Metrics) VisibilityChanged(visible bool) {
	if visible {
		m.richVisible.Set(1)
		return
	}
	m.richVisible.Set(0)
}

func (m *Metrics) TickCompleted(d time.Duration) {
	m.ticks.Inc()
	m.tickDuration.Observe(d.Seconds())
}

func (m *Metrics) Discarded() { m.discarded.Inc() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return mux
}

// Serve listens on addr until ctx is canceled.
func (m *Metrics) Serve(ctx context.Context, addr string, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("metrics listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- errors.Wrapf(err, "serve metrics on %s", addr)
			return
		}
		errc <- nil
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown metrics server")
	}
	log.Info("metrics listener stopped")
	return <-errc
}
