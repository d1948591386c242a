package probe

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultSysfsRoot = "/sys"
	defaultProcRoot  = "/proc"
	commandTimeout   = 400 * time.Millisecond
)

var _ System = (*Host)(nil)

// Host reads the local machine.
type Host struct {
	sysfsRoot string
	procRoot  string
	start     time.Time

	mu     sync.Mutex
	iowait []float64 // highest iowait seen per core, in seconds

	// run executes an external helper; overridden in tests.
	run func(timeout time.Duration, name string, args ...string) (string, error)
}

// Option customizes a Host.
type Option func(*Host)

// WithSysfsRoot points sysfs reads at root instead of /sys.
func WithSysfsRoot(root string) Option { return func(h *Host) { h.sysfsRoot = root } }

// WithProcRoot points procfs reads at root instead of /proc.
func WithProcRoot(root string) Option { return func(h *Host) { h.procRoot = root } }

// NewHost returns a Host reading the real system.
func NewHost(opts ...Option) *Host {
	h := &Host{
		sysfsRoot: defaultSysfsRoot,
		procRoot:  defaultProcRoot,
		start:     time.Now(),
		run:       runCmd,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Now returns seconds elapsed on the monotonic clock since the Host was created.
func (h *Host) Now() float64 { return time.Since(h.start).Seconds() }

func (h *Host) sysfs(parts ...string) string {
	return filepath.Join(append([]string{h.sysfsRoot}, parts...)...)
}

func (h *Host) procfs(parts ...string) string {
	return filepath.Join(append([]string{h.procRoot}, parts...)...)
}

func runCmd(timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ctx.Err()
	}
	return string(out), err
}

func readTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func readInt(path string) (int64, error) {
	s, err := readTrimmed(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}
