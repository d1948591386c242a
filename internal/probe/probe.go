// Package probe binds the sampling engine to the operating system.
//
// Each metric domain is read through a small interface so samplers can be
// exercised against fakes; Host implements all of them on top of gopsutil,
// distatus/battery and Linux sysfs/procfs.
package probe

import (
	"time"

	"github.com/Dicklesworthstone/hoststat/internal/model"
)

// CoreTicks is one core's cumulative scheduler ticks. The counters are
// 32 bits wide and may wrap.
type CoreTicks struct {
	User   uint32
	System uint32
	Idle   uint32
	Nice   uint32
}

// CPUReader reads per-core tick counters.
type CPUReader interface {
	CPUTicks() ([]CoreTicks, error)
}

// Pages holds page counts per memory category.
type Pages struct {
	Active     uint64
	Wired      uint64
	Compressed uint64
	Free       uint64
}

// MemoryReader reads page accounting. PhysicalMemory and PageSize are
// expected to be read once.
type MemoryReader interface {
	MemoryPages() (Pages, error)
	PhysicalMemory() (uint64, error)
	PageSize() uint64
}

// InterfaceCounters is one non-loopback interface's cumulative byte counters.
type InterfaceCounters struct {
	Name          string
	SentBytes     uint64
	ReceivedBytes uint64
}

// NetworkReader lists non-loopback interfaces.
type NetworkReader interface {
	Interfaces() ([]InterfaceCounters, error)
}

// Clock returns monotonic seconds since an arbitrary origin.
type Clock interface {
	Now() float64
}

// ProcessInfo is one live process.
type ProcessInfo struct {
	PID           int32
	Name          string
	CPUSeconds    float64 // cumulative user+system
	ResidentBytes uint64
}

// ProcessReader enumerates processes.
type ProcessReader interface {
	Processes() ([]ProcessInfo, error)
	ActiveProcessors() int
	PhysicalMemory() (uint64, error)
}

// PowerSource is the primary power source. Minutes are -1 when unknown.
type PowerSource struct {
	Present         bool
	CurrentCapacity int
	MaxCapacity     int
	Charging        bool
	PluggedIn       bool
	MinutesToEmpty  int
	MinutesToFull   int
}

// ExtendedBattery holds slow-changing battery properties.
type ExtendedBattery struct {
	CycleCount        int
	DesignCapacity    int
	MaxCapacity       int
	TemperatureCentiC int
}

// LoadReader reads the 1, 5 and 15 minute run-queue averages.
type LoadReader interface {
	LoadAverage() (model.Load, error)
}

// BatteryReader reads power state. ExtendedBattery is only meaningful
// when PowerSource reports a present battery.
type BatteryReader interface {
	PowerSource() (PowerSource, error)
	ExtendedBattery() (ExtendedBattery, error)
}

// Wireless is the wireless interface state. A zero value means no wireless
// interface exists.
type Wireless struct {
	Active    bool
	SSID      string
	RSSI      int
	Channel   int
	Interface string
}

// WirelessReader reads the wireless interface and resolves its address.
type WirelessReader interface {
	Wireless() (Wireless, error)
	LocalAddress(iface string) (string, error)
}

// FSUsage is filesystem capacity in bytes.
type FSUsage struct {
	Total uint64
	Free  uint64
}

// FilesystemReader reads filesystem usage for a mount path.
type FilesystemReader interface {
	FilesystemUsage(path string) (FSUsage, error)
}

// ThermalReader returns a raw thermal ordinal. Values outside 0-3 are
// possible and left to the caller to interpret.
type ThermalReader interface {
	ThermalState() (int, error)
}

// HostReader reads static host information and uptime.
type HostReader interface {
	HostInfo() (model.Host, error)
	Uptime() (time.Duration, error)
}

// System is everything the engine consumes from the environment.
type System interface {
	CPUReader
	LoadReader
	MemoryReader
	NetworkReader
	Clock
	ProcessReader
	BatteryReader
	WirelessReader
	FilesystemReader
	ThermalReader
	HostReader
}
