package sampler

import (
	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

// CPUSampler derives usage from per-core tick deltas.
type CPUSampler struct {
	src      probe.CPUReader
	reporter Reporter

	prev []probe.CoreTicks
}

func NewCPUSampler(src probe.CPUReader, reporter Reporter) *CPUSampler {
	return &CPUSampler{src: src, reporter: reporterOrDefault(reporter)}
}

// Sample returns usage since the previous call. Tick deltas use wrapping
// subtraction so a counter that rolls over still yields a small delta.
// Without a baseline for the same core count every value is zero.
func (s *CPUSampler) Sample() model.CPU {
	cur, err := s.src.CPUTicks()
	if err != nil {
		s.reporter.ReadFailed(DomainCPU, err)
		return model.CPU{}
	}

	perCore := make([]float64, len(cur))
	if len(s.prev) != len(cur) {
		s.prev = cur
		return model.CPU{PerCore: perCore}
	}

	var busyTotal, grandTotal uint64
	for i, c := range cur {
		p := s.prev[i]
		user := uint64(c.User - p.User)
		system := uint64(c.System - p.System)
		idle := uint64(c.Idle - p.Idle)
		nice := uint64(c.Nice - p.Nice)

		busy := user + system + nice
		total := busy + idle
		if total > 0 {
			perCore[i] = clampPercent(float64(busy) / float64(total) * 100)
		}
		busyTotal += busy
		grandTotal += total
	}
	s.prev = cur

	var usage float64
	if grandTotal > 0 {
		usage = clampPercent(float64(busyTotal) / float64(grandTotal) * 100)
	}
	return model.CPU{Total: usage, PerCore: perCore}
}
