package sampler

import (
	"errors"
	"time"

	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

var errRead = errors.New("read failed")

// fakeSystem is a scripted environment. Each slice is consumed one entry
// per call; the last entry repeats.
type fakeSystem struct {
	ticks     [][]probe.CoreTicks
	pages     probe.Pages
	physical  uint64
	pageSize  uint64
	ifaces    [][]probe.InterfaceCounters
	clock     []float64
	procs     [][]probe.ProcessInfo
	cores     int
	power     probe.PowerSource
	ext       probe.ExtendedBattery
	extErr    error
	wireless  probe.Wireless
	localIP   string
	fs        []probe.FSUsage
	thermal   int
	thermErr  error
	load      model.Load
	loadErr   error
	host      model.Host
	uptime    time.Duration
	failNext  map[string]bool
	callCount map[string]int
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		physical:  16 << 30,
		pageSize:  4096,
		cores:     4,
		failNext:  make(map[string]bool),
		callCount: make(map[string]int),
	}
}

func (f *fakeSystem) call(name string) (int, error) {
	n := f.callCount[name]
	f.callCount[name] = n + 1
	if f.failNext[name] {
		delete(f.failNext, name)
		return n, errRead
	}
	return n, nil
}

func pick[T any](s []T, n int) T {
	var zero T
	if len(s) == 0 {
		return zero
	}
	if n >= len(s) {
		return s[len(s)-1]
	}
	return s[n]
}

func (f *fakeSystem) CPUTicks() ([]probe.CoreTicks, error) {
	n, err := f.call("cpu")
	if err != nil {
		return nil, err
	}
	return append([]probe.CoreTicks(nil), pick(f.ticks, n)...), nil
}

func (f *fakeSystem) MemoryPages() (probe.Pages, error) {
	if _, err := f.call("memory"); err != nil {
		return probe.Pages{}, err
	}
	return f.pages, nil
}

func (f *fakeSystem) PhysicalMemory() (uint64, error) { return f.physical, nil }
func (f *fakeSystem) PageSize() uint64                { return f.pageSize }

func (f *fakeSystem) Interfaces() ([]probe.InterfaceCounters, error) {
	n, err := f.call("network")
	if err != nil {
		return nil, err
	}
	return pick(f.ifaces, n), nil
}

func (f *fakeSystem) Now() float64 {
	n := f.callCount["clock"]
	f.callCount["clock"] = n + 1
	return pick(f.clock, n)
}

func (f *fakeSystem) Processes() ([]probe.ProcessInfo, error) {
	n, err := f.call("processes")
	if err != nil {
		return nil, err
	}
	return pick(f.procs, n), nil
}

func (f *fakeSystem) ActiveProcessors() int { return f.cores }

func (f *fakeSystem) PowerSource() (probe.PowerSource, error) {
	if _, err := f.call("battery"); err != nil {
		return probe.PowerSource{}, err
	}
	return f.power, nil
}

func (f *fakeSystem) ExtendedBattery() (probe.ExtendedBattery, error) {
	f.callCount["battery_ext"]++
	return f.ext, f.extErr
}

func (f *fakeSystem) Wireless() (probe.Wireless, error) {
	if _, err := f.call("wifi"); err != nil {
		return probe.Wireless{}, err
	}
	return f.wireless, nil
}

func (f *fakeSystem) LocalAddress(string) (string, error) {
	f.callCount["local_ip"]++
	return f.localIP, nil
}

func (f *fakeSystem) FilesystemUsage(string) (probe.FSUsage, error) {
	n, err := f.call("disk")
	if err != nil {
		return probe.FSUsage{}, err
	}
	return pick(f.fs, n), nil
}

func (f *fakeSystem) ThermalState() (int, error) {
	f.callCount["thermal"]++
	return f.thermal, f.thermErr
}

func (f *fakeSystem) LoadAverage() (model.Load, error) {
	f.callCount["load"]++
	return f.load, f.loadErr
}

func (f *fakeSystem) HostInfo() (model.Host, error)  { return f.host, nil }
func (f *fakeSystem) Uptime() (time.Duration, error) { return f.uptime, nil }

// recordingReporter collects failed domains.
type recordingReporter struct {
	domains []string
}

func (r *recordingReporter) ReadFailed(domain string, _ error) {
	r.domains = append(r.domains, domain)
}
