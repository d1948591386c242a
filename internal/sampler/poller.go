package sampler

import (
	"time"

	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

// Cadence sets how many ticks pass between reads of the slow domains.
// A value of 1 or less reads every tick.
type Cadence struct {
	Disk      int
	Battery   int
	WiFi      int
	Processes int
}

// DefaultCadence refreshes disk every 5th tick, battery every 15th,
// Wi-Fi every 10th and the process list every 5th.
func DefaultCadence() Cadence {
	return Cadence{Disk: 5, Battery: 15, WiFi: 10, Processes: 5}
}

// Samplers is the set of per-domain samplers a Poller owns. Host, Load
// and Thermal may be nil.
type Samplers struct {
	CPU       *CPUSampler
	Memory    *MemorySampler
	Network   *NetworkSampler
	Disk      *DiskSampler
	Processes *ProcessSampler
	Battery   *BatterySampler
	WiFi      *WiFiSampler
	Host      *HostSampler
	Thermal   probe.ThermalReader
	Load      probe.LoadReader
}

// NewSamplers builds every sampler against a single environment.
func NewSamplers(sys probe.System, diskPath string, reporter Reporter) Samplers {
	return Samplers{
		CPU:       NewCPUSampler(sys, reporter),
		Memory:    NewMemorySampler(sys, reporter),
		Network:   NewNetworkSampler(sys, sys, reporter),
		Disk:      NewDiskSampler(sys, diskPath, reporter),
		Processes: NewProcessSampler(sys, sys, reporter),
		Battery:   NewBatterySampler(sys, reporter),
		WiFi:      NewWiFiSampler(sys, reporter),
		Host:      NewHostSampler(sys, reporter),
		Thermal:   sys,
		Load:      sys,
	}
}

// Poller composes one Snapshot per tick. Volatile domains are sampled on
// every call; slow ones on their cadence, with the previous result reused
// in between. Refresh must not be called concurrently.
type Poller struct {
	s        Samplers
	cadence  Cadence
	topN     int
	reporter Reporter
	now      func() time.Time

	tick    uint64
	disk    model.Disk
	battery model.Battery
	wifi    model.WiFi
	top     []model.Process
}

// NewPoller takes ownership of s.
func NewPoller(s Samplers, cadence Cadence, topN int, reporter Reporter) *Poller {
	return &Poller{
		s:        s,
		cadence:  cadence,
		topN:     topN,
		reporter: reporterOrDefault(reporter),
		now:      time.Now,
	}
}

// Tick returns the number of completed refreshes.
func (p *Poller) Tick() uint64 { return p.tick }

// Host returns the static host information, zero if no HostSampler is set.
func (p *Poller) Host() model.Host {
	if p.s.Host == nil {
		return model.Host{}
	}
	return p.s.Host.Info()
}

func (p *Poller) Refresh() model.Snapshot {
	snap := model.Snapshot{
		Timestamp: p.now(),
		Tick:      p.tick,
		CPU:       p.s.CPU.Sample(),
		Memory:    p.s.Memory.Sample(),
		Network:   p.s.Network.Sample(),
		Load:      p.load(),
		Thermal:   p.thermal(),
	}

	if due(p.tick, p.cadence.Disk) {
		p.disk = p.s.Disk.Sample()
	}
	if due(p.tick, p.cadence.Battery) {
		p.battery = p.s.Battery.Sample()
	}
	if due(p.tick, p.cadence.WiFi) {
		p.wifi = p.s.WiFi.Sample()
	}
	if p.s.Processes != nil && processesDue(p.tick, p.cadence.Processes) {
		p.top = p.s.Processes.Top(p.topN)
	}
	if p.s.Host != nil {
		snap.Uptime = p.s.Host.Uptime()
	}

	snap.Disk = p.disk
	snap.Battery = p.battery
	snap.WiFi = p.wifi
	// The cached slice is replaced, never modified, so sharing it is safe.
	snap.Top = p.top

	p.tick++
	return snap
}

func (p *Poller) thermal() model.ThermalLevel {
	if p.s.Thermal == nil {
		return model.ThermalNominal
	}
	raw, err := p.s.Thermal.ThermalState()
	if err != nil {
		p.reporter.ReadFailed(DomainThermal, err)
		return model.ThermalNominal
	}
	return model.ThermalLevelFromRaw(raw)
}

func (p *Poller) load() model.Load {
	if p.s.Load == nil {
		return model.Load{}
	}
	avg, err := p.s.Load.LoadAverage()
	if err != nil {
		p.reporter.ReadFailed(DomainLoad, err)
		return model.Load{}
	}
	return avg
}

// processesDue also fires on the first tick after priming: the priming
// read only sets the baseline, so its ranking has no CPU figures.
func processesDue(tick uint64, every int) bool {
	if tick == 0 {
		return true
	}
	return due(tick-1, every)
}

func due(tick uint64, every int) bool {
	if every <= 1 {
		return true
	}
	return tick%uint64(every) == 0
}
