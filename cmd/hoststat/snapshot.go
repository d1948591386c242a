package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/sampler"
)

type snapshotOutput struct {
	Host     model.Host     `json:"host"`
	Snapshot model.Snapshot `json:"snapshot"`
}

// NewSnapshotCommand .
func NewSnapshotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print one snapshot as JSON and exit",
		Long: `Print one snapshot as JSON and exit.

Rates and CPU usage need two reads, so this primes the samplers, waits
one interval and then samples again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			closer, err := setupLogger(cfg, false)
			if err != nil {
				return err
			}
			defer closer.Close()

			reporter := sampler.LogReporter{Logger: logrus.WithField("component", "sampler")}
			out, err := takeSnapshot(cmd.Context(), cfg.Interval, newPoller(cfg, reporter))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return errors.Wrap(enc.Encode(out), "encode snapshot")
		},
	}
}

type refresher interface {
	Refresh() model.Snapshot
	Host() model.Host
}

func takeSnapshot(ctx context.Context, wait time.Duration, p refresher) (snapshotOutput, error) {
	p.Refresh()
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return snapshotOutput{}, errors.Wrap(ctx.Err(), "waiting for second sample")
	case <-timer.C:
	}
	return snapshotOutput{Host: p.Host(), Snapshot: p.Refresh()}, nil
}
