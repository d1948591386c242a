package probe

import (
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

// Processes enumerates live processes. Processes that exit mid-scan or
// cannot be inspected are skipped.
func (h *Host) Processes() ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, errors.Wrap(err, "list processes")
	}
	out := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		times, err := p.Times()
		if err != nil {
			continue
		}
		memInfo, err := p.MemoryInfo()
		if err != nil || memInfo == nil {
			continue
		}
		name, _ := p.Name()
		out = append(out, ProcessInfo{
			PID:           p.Pid,
			Name:          name,
			CPUSeconds:    times.User + times.System,
			ResidentBytes: memInfo.RSS,
		})
	}
	return out, nil
}
