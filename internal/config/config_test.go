package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hoststat.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Interval != 3*time.Second || cfg.HistoryLength != 30 || cfg.TopN != 5 || cfg.DiskPath != "/" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	c := cfg.Cadence()
	if c.Disk != 5 || c.Battery != 15 || c.WiFi != 10 || c.Processes != 5 {
		t.Errorf("Cadence() = %+v", c)
	}
}

func TestResolveLayers(t *testing.T) {
	path := writeYAML(t, "interval: 5s\nhistory_length: 60\ntop_n: 8\ndisk_path: /home\n")

	flagged := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs, &flagged)
	if err := fs.Parse([]string{"--top", "3", "--interval", "2s"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Resolve(fs, path, env(map[string]string{"HOSTSTAT_INTERVAL": "7"}))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Interval != 7*time.Second {
		t.Errorf("Interval = %s, want env value 7s", cfg.Interval)
	}
	if cfg.TopN != 3 {
		t.Errorf("TopN = %d, want flag value 3", cfg.TopN)
	}
	if cfg.HistoryLength != 60 || cfg.DiskPath != "/home" {
		t.Errorf("yaml values lost: %+v", cfg)
	}
	if cfg.Warmup != 300*time.Millisecond {
		t.Errorf("Warmup = %s, want default", cfg.Warmup)
	}
}

func TestResolveWithoutFile(t *testing.T) {
	flagged := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs, &flagged)
	_ = fs.Parse(nil)

	cfg, err := Resolve(fs, "", env(nil))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Resolve with nothing set = %+v, want defaults", cfg)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "bad yaml", yaml: "interval: [\n"},
		{name: "zero interval", yaml: "interval: 0s\n"},
		{name: "zero history", env: map[string]string{"HOSTSTAT_HISTORY": "0"}},
		{name: "negative cadence", yaml: "disk_every: -1\n"},
		{name: "bad log level", env: map[string]string{"HOSTSTAT_LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.yaml != "" {
				path = writeYAML(t, tt.yaml)
			}
			flagged := Default()
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			BindFlags(fs, &flagged)
			if _, err := Resolve(fs, path, env(tt.env)); err == nil {
				t.Errorf("Resolve succeeded, want error")
			}
		})
	}
}

func TestResolveMissingFile(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if _, err := Resolve(fs, filepath.Join(t.TempDir(), "nope.yaml"), env(nil)); err == nil {
		t.Errorf("Resolve with missing file succeeded")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name  string
		vars  map[string]string
		check func(Config) bool
	}{
		{"duration", map[string]string{"HOSTSTAT_INTERVAL": "1500ms"}, func(c Config) bool { return c.Interval == 1500*time.Millisecond }},
		{"bare seconds", map[string]string{"HOSTSTAT_INTERVAL": "4"}, func(c Config) bool { return c.Interval == 4*time.Second }},
		{"garbage ignored", map[string]string{"HOSTSTAT_INTERVAL": "soon"}, func(c Config) bool { return c.Interval == 3*time.Second }},
		{"history", map[string]string{"HOSTSTAT_HISTORY": "12"}, func(c Config) bool { return c.HistoryLength == 12 }},
		{"disk path", map[string]string{"HOSTSTAT_DISK_PATH": "/data"}, func(c Config) bool { return c.DiskPath == "/data" }},
		{"metrics", map[string]string{"HOSTSTAT_METRICS_LISTEN": ":9100"}, func(c Config) bool { return c.MetricsListen == ":9100" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			ApplyEnv(&cfg, env(tt.vars))
			if !tt.check(cfg) {
				t.Errorf("ApplyEnv(%v) = %+v", tt.vars, cfg)
			}
		})
	}
}
