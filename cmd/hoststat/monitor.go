package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/hoststat/internal/config"
	"github.com/Dicklesworthstone/hoststat/internal/history"
	"github.com/Dicklesworthstone/hoststat/internal/hub"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
	"github.com/Dicklesworthstone/hoststat/internal/sampler"
	"github.com/Dicklesworthstone/hoststat/internal/telemetry"
	"github.com/Dicklesworthstone/hoststat/internal/ui"
)

func newPoller(c config.Config, reporter sampler.Reporter) *sampler.Poller {
	samplers := sampler.NewSamplers(probe.NewHost(), c.DiskPath, reporter)
	return sampler.NewPoller(samplers, c.Cadence(), c.TopN, reporter)
}

// runMonitor wires the poller, hub and UI together and blocks until the
// user quits or a signal arrives.
func runMonitor(parent context.Context, c config.Config) error {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logrus.StandardLogger()
	metrics := telemetry.New(sampler.LogReporter{Logger: log.WithField("component", "sampler")})
	poller := newPoller(c, metrics)

	var runner *hub.Runner
	view := ui.New(ui.VisibilityFunc(func(visible bool) { runner.SetVisible(visible) }), cancel)
	prog := ui.NewProgram(view)
	light, rich := ui.Subscribers(prog)

	h := hub.New(history.NewSet(c.HistoryLength), light, rich,
		hub.WithHost(poller.Host()),
		hub.WithObserver(metrics))
	runner = hub.NewRunner(poller, h, c.Interval,
		hub.WithWarmup(c.Warmup),
		hub.WithLogger(log),
		hub.WithTickObserver(metrics))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runner.Run(gctx) })
	if c.MetricsListen != "" {
		g.Go(func() error {
			return metrics.Serve(gctx, c.MetricsListen, log.WithField("component", "telemetry"))
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		prog.Quit()
		return nil
	})

	_, err := prog.Run()
	cancel()
	if werr := g.Wait(); werr != nil {
		return werr
	}
	return errors.Wrap(err, "run ui")
}
