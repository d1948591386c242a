package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/hoststat/internal/history"
	"github.com/Dicklesworthstone/hoststat/internal/sampler"
)

// Config carries runtime options for hoststat.
type Config struct {
	Interval      time.Duration `yaml:"interval"`
	Warmup        time.Duration `yaml:"warmup"`
	HistoryLength int           `yaml:"history_length"`
	TopN          int           `yaml:"top_n"`
	DiskPath      string        `yaml:"disk_path"`
	DiskEvery     int           `yaml:"disk_every"`
	BatteryEvery  int           `yaml:"battery_every"`
	WiFiEvery     int           `yaml:"wifi_every"`
	ProcessEvery  int           `yaml:"process_every"`
	LogLevel      string        `yaml:"log_level"`
	LogFile       string        `yaml:"log_file"`
	MetricsListen string        `yaml:"metrics_listen"`
	JSON          bool          `yaml:"json"`
}

func Default() Config {
	cadence := sampler.DefaultCadence()
	return Config{
		Interval:      3 * time.Second,
		Warmup:        300 * time.Millisecond,
		HistoryLength: history.DefaultCapacity,
		TopN:          5,
		DiskPath:      sampler.DefaultDiskPath,
		DiskEvery:     cadence.Disk,
		BatteryEvery:  cadence.Battery,
		WiFiEvery:     cadence.WiFi,
		ProcessEvery:  cadence.Processes,
		LogLevel:      "info",
	}
}

// BindFlags registers one flag per field, defaulting to cfg's values.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "refresh interval")
	fs.DurationVar(&cfg.Warmup, "warmup", cfg.Warmup, "delay between priming and the first tick")
	fs.IntVar(&cfg.HistoryLength, "history", cfg.HistoryLength, "samples kept per history series")
	fs.IntVar(&cfg.TopN, "top", cfg.TopN, "number of top processes")
	fs.StringVar(&cfg.DiskPath, "disk-path", cfg.DiskPath, "filesystem to report usage for")
	fs.IntVar(&cfg.DiskEvery, "disk-every", cfg.DiskEvery, "read disk usage every N ticks")
	fs.IntVar(&cfg.BatteryEvery, "battery-every", cfg.BatteryEvery, "read battery every N ticks")
	fs.IntVar(&cfg.WiFiEvery, "wifi-every", cfg.WiFiEvery, "read wifi every N ticks")
	fs.IntVar(&cfg.ProcessEvery, "process-every", cfg.ProcessEvery, "rank processes every N ticks")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file")
	fs.StringVar(&cfg.MetricsListen, "metrics-listen", cfg.MetricsListen, "serve Prometheus metrics on this address")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "log in JSON")
}

// Resolve layers defaults, the YAML file at path (if any), the flags
// explicitly set on fs, and finally the environment read through getenv.
func Resolve(fs *pflag.FlagSet, path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	overlay := pflag.NewFlagSet("overlay", pflag.ContinueOnError)
	BindFlags(overlay, &cfg)
	var setErr error
	fs.Visit(func(f *pflag.Flag) {
		if overlay.Lookup(f.Name) == nil || setErr != nil {
			return
		}
		setErr = overlay.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return Config{}, errors.Wrap(setErr, "apply flags")
	}

	ApplyEnv(&cfg, getenv)
	return cfg, cfg.Validate()
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides. Unparseable values are ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("HOSTSTAT_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Interval = parsed
		} else if parsed, err2 := time.ParseDuration(v + "s"); err2 == nil {
			cfg.Interval = parsed
		}
	}
	if v := getenv("HOSTSTAT_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HistoryLength = n
		}
	}
	if v := getenv("HOSTSTAT_DISK_PATH"); v != "" {
		cfg.DiskPath = v
	}
	if v := getenv("HOSTSTAT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("HOSTSTAT_METRICS_LISTEN"); v != "" {
		cfg.MetricsListen = v
	}
}

func (c Config) Validate() error {
	if c.Interval <= 0 {
		return errors.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.Warmup < 0 {
		return errors.Errorf("warmup must not be negative, got %s", c.Warmup)
	}
	if c.HistoryLength <= 0 {
		return errors.Errorf("history length must be positive, got %d", c.HistoryLength)
	}
	if c.TopN < 0 {
		return errors.Errorf("top must not be negative, got %d", c.TopN)
	}
	for name, every := range map[string]int{
		"disk-every":    c.DiskEvery,
		"battery-every": c.BatteryEvery,
		"wifi-every":    c.WiFiEvery,
		"process-every": c.ProcessEvery,
	} {
		if every < 0 {
			return errors.Errorf("%s must not be negative, got %d", name, every)
		}
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}

// Cadence converts the refresh settings for the poller.
func (c Config) Cadence() sampler.Cadence {
	return sampler.Cadence{
		Disk:      c.DiskEvery,
		Battery:   c.BatteryEvery,
		WiFi:      c.WiFiEvery,
		Processes: c.ProcessEvery,
	}
}
