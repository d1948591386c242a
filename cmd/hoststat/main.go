package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/hoststat/internal/config"
)

var (
	version    = "dev"
	configPath = ""
	flagged    = config.Default()
	cfg        config.Config
)

// NewCommand builds the root command. Without a subcommand it runs the
// interactive monitor.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hoststat",
		Short:         "hoststat samples CPU, memory, network, power and more, and shows them live",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.Resolve(cmd.Flags(), configPath, os.Getenv)
			if err != nil {
				return err
			}
			cfg = resolved
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			closer, err := setupLogger(cfg, true)
			if err != nil {
				return err
			}
			defer closer.Close()
			return runMonitor(cmd.Context(), cfg)
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	config.BindFlags(globalFlags, &flagged)

	cmd.AddCommand(
		NewSnapshotCommand(),
		NewVersionCommand(),
	)
	return cmd
}

// NewVersionCommand .
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("%s\n", version)
		},
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogger configures the standard logger. The full-screen UI owns the
// terminal, so in that mode logs go to LogFile or nowhere.
func setupLogger(c config.Config, tui bool) (io.Closer, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse log level")
	}
	logrus.SetLevel(level)

	switch {
	case c.JSON:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case term.IsTerminal(int(os.Stderr.Fd())):
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{})
	}

	var closer io.Closer = nopCloser{}
	switch {
	case c.LogFile != "":
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, errors.Wrapf(err, "open log file %s", c.LogFile)
		}
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
		if c.JSON {
			logrus.SetFormatter(&logrus.JSONFormatter{})
		}
		logrus.SetOutput(f)
		closer = f
	case tui:
		logrus.SetOutput(io.Discard)
	default:
		logrus.SetOutput(os.Stderr)
	}
	return closer, nil
}

func main() {
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
