package probe

import (
	"math"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
)

// ticksPerSecond converts gopsutil's second-based times back into the
// USER_HZ ticks the kernel counts in.
const ticksPerSecond = 100

// cpuTimes is swapped in tests.
var cpuTimes = cpu.Times

// CPUTicks reads per-core times. Iowait is folded into idle and interrupt
// and steal time into system, so the four buckets cover all time.
func (h *Host) CPUTicks() ([]CoreTicks, error) {
	times, err := cpuTimes(true)
	if err != nil {
		return nil, errors.Wrap(err, "read cpu times")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.iowait) != len(times) {
		h.iowait = make([]float64, len(times))
	}
	out := make([]CoreTicks, len(times))
	for i, t := range times {
		// The kernel's iowait counter can go backwards; idle must not.
		iowait := max(t.Iowait, h.iowait[i])
		h.iowait[i] = iowait
		out[i] = CoreTicks{
			User:   toTicks(t.User),
			System: toTicks(t.System + t.Irq + t.Softirq + t.Steal),
			Idle:   toTicks(t.Idle + iowait),
			Nice:   toTicks(t.Nice),
		}
	}
	return out, nil
}

// toTicks truncates to 32 bits, so long uptimes wrap like a native counter.
func toTicks(seconds float64) uint32 {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0
	}
	return uint32(uint64(seconds * ticksPerSecond))
}

// ActiveProcessors returns the logical CPU count, at least 1.
func (h *Host) ActiveProcessors() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
