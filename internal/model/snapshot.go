package model

import "time"

// CPU aggregates instantaneous CPU usage.
type CPU struct {
	Total   float64   `json:"total"`    // percent 0-100
	PerCore []float64 `json:"per_core"` // per-core percent, one entry per reported core
}

// Cores returns the number of cores reported in this read.
func (c CPU) Cores() int { return len(c.PerCore) }

// Load is the run-queue length averaged over 1, 5 and 15 minutes.
type Load struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// Memory captures RAM accounting in bytes. UsedBytes is Active+Wired+Compressed.
type Memory struct {
	TotalBytes      uint64 `json:"total_bytes"`
	UsedBytes       uint64 `json:"used_bytes"`
	ActiveBytes     uint64 `json:"active_bytes"`
	WiredBytes      uint64 `json:"wired_bytes"`
	CompressedBytes uint64 `json:"compressed_bytes"`
	FreeBytes       uint64 `json:"free_bytes"`
}

// UsagePercent is UsedBytes over TotalBytes, 0 when the total is unknown.
func (m Memory) UsagePercent() float64 { return Percent(m.UsedBytes, m.TotalBytes) }

// Network holds cross-interface throughput in bytes per second.
type Network struct {
	SentBytesPerSec     float64 `json:"sent_bytes_per_sec"`
	ReceivedBytesPerSec float64 `json:"received_bytes_per_sec"`
}

// Disk is the usage of the filesystem mounted at Path.
type Disk struct {
	Path       string `json:"path"`
	TotalBytes uint64 `json:"total_bytes"`
	FreeBytes  uint64 `json:"free_bytes"`
}

// UsedBytes never underflows, even for inconsistent reads.
func (d Disk) UsedBytes() uint64 {
	if d.FreeBytes > d.TotalBytes {
		return 0
	}
	return d.TotalBytes - d.FreeBytes
}

func (d Disk) UsagePercent() float64 { return Percent(d.UsedBytes(), d.TotalBytes) }

// Process is a lightweight top entry. PID identity is only meaningful
// within the snapshot that carries it.
type Process struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float64 `json:"mem_percent"`
}

// Battery shows power state. When Present is false every other field is zero.
type Battery struct {
	Present         bool    `json:"present"`
	CurrentCapacity int     `json:"current_capacity"`
	MaxCapacity     int     `json:"max_capacity"`
	Charging        bool    `json:"charging"`
	PluggedIn       bool    `json:"plugged_in"`
	MinutesToEmpty  int     `json:"minutes_to_empty"` // -1 = unknown
	MinutesToFull   int     `json:"minutes_to_full"`  // -1 = unknown
	CycleCount      int     `json:"cycle_count"`
	DesignCapacity  int     `json:"design_capacity"`
	HealthPercent   float64 `json:"health_percent"`
	TemperatureC    float64 `json:"temperature_c"`
}

// ChargePercent is CurrentCapacity over MaxCapacity.
func (b Battery) ChargePercent() float64 {
	if b.MaxCapacity <= 0 || b.CurrentCapacity <= 0 {
		return 0
	}
	return clampPercent(float64(b.CurrentCapacity) / float64(b.MaxCapacity) * 100)
}

// HealthPercent computes max/design capacity, 0 when the design capacity is unknown.
func HealthPercent(maxCapacity, designCapacity int) float64 {
	if designCapacity <= 0 || maxCapacity <= 0 {
		return 0
	}
	return float64(maxCapacity) / float64(designCapacity) * 100
}

// WiFi describes the wireless interface. An inactive interface carries only its name.
type WiFi struct {
	Active    bool   `json:"active"`
	SSID      string `json:"ssid"`
	RSSI      int    `json:"rssi_dbm"` // typically -30 (best) to -90 (worst)
	Channel   int    `json:"channel"`
	LocalIP   string `json:"local_ip"`
	Interface string `json:"interface"`
}

// SignalBars maps RSSI onto 0-4 bars.
func (w WiFi) SignalBars() int {
	switch {
	case w.RSSI >= -50:
		return 4
	case w.RSSI >= -60:
		return 3
	case w.RSSI >= -70:
		return 2
	case w.RSSI >= -80:
		return 1
	default:
		return 0
	}
}

// Host is static system information read once at startup.
type Host struct {
	Hostname        string `json:"hostname"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelVersion   string `json:"kernel_version"`
	Arch            string `json:"arch"`
	CPUModel        string `json:"cpu_model"`
	Cores           int    `json:"cores"`
}

// Snapshot is the full aggregate produced by one tick. It is a value and
// is never mutated once composed.
type Snapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	Tick      uint64        `json:"tick"`
	CPU       CPU           `json:"cpu"`
	Load      Load          `json:"load"`
	Memory    Memory        `json:"memory"`
	Network   Network       `json:"network"`
	Disk      Disk          `json:"disk"`
	Top       []Process     `json:"top"`
	Battery   Battery       `json:"battery"`
	WiFi      WiFi          `json:"wifi"`
	Thermal   ThermalLevel  `json:"thermal"`
	Uptime    time.Duration `json:"uptime"`
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.CPU.PerCore != nil {
		out.CPU.PerCore = append([]float64(nil), s.CPU.PerCore...)
	}
	if s.Top != nil {
		out.Top = append([]Process(nil), s.Top...)
	}
	return out
}

// Percent returns used/total*100 clamped to [0,100]; 0 when total is 0.
func Percent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return clampPercent(float64(used) * 100 / float64(total))
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
