package sampler

import (
	"sort"

	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

// Entries at or below both thresholds are idle noise and never listed.
const (
	minCPUPercent = 0.01
	minMemPercent = 0.1
)

// ProcessSampler ranks processes by CPU usage since the previous call.
type ProcessSampler struct {
	src      probe.ProcessReader
	clock    probe.Clock
	reporter Reporter

	totalMemory float64
	hasBaseline bool
	prevTime    float64
	prevCPU     map[int32]float64
}

// NewProcessSampler reads physical memory size once.
func NewProcessSampler(src probe.ProcessReader, clock probe.Clock, reporter Reporter) *ProcessSampler {
	s := &ProcessSampler{
		src:      src,
		clock:    clock,
		reporter: reporterOrDefault(reporter),
		prevCPU:  make(map[int32]float64),
	}
	total, err := src.PhysicalMemory()
	if err != nil {
		s.reporter.ReadFailed(DomainProcesses, err)
	}
	s.totalMemory = float64(total)
	return s
}

// Top returns at most n processes sorted by descending CPU, ties kept in
// enumeration order. The per-pid baseline is rebuilt on every call so
// exited processes are forgotten.
func (s *ProcessSampler) Top(n int) []model.Process {
	procs, err := s.src.Processes()
	if err != nil {
		s.reporter.ReadFailed(DomainProcesses, err)
		return nil
	}

	now := s.clock.Now()
	var dt float64
	if s.hasBaseline {
		dt = now - s.prevTime
	}
	cores := float64(s.src.ActiveProcessors())
	if cores < 1 {
		cores = 1
	}

	cur := make(map[int32]float64, len(procs))
	entries := make([]model.Process, 0, 64)
	for _, p := range procs {
		if p.PID <= 0 {
			continue
		}
		cur[p.PID] = p.CPUSeconds

		var cpuPct float64
		if dt > 0 {
			// A negative delta means the pid was reused.
			if prev, ok := s.prevCPU[p.PID]; ok && p.CPUSeconds >= prev {
				cpuPct = clampPercent((p.CPUSeconds - prev) / dt * 100 / cores)
			}
		}
		var memPct float64
		if s.totalMemory > 0 {
			memPct = clampPercent(float64(p.ResidentBytes) / s.totalMemory * 100)
		}

		if cpuPct <= minCPUPercent && memPct <= minMemPercent {
			continue
		}
		if p.Name == "" {
			continue
		}
		entries = append(entries, model.Process{
			PID:        p.PID,
			Name:       p.Name,
			CPUPercent: cpuPct,
			MemPercent: memPct,
		})
	}

	s.prevCPU = cur
	s.prevTime = now
	s.hasBaseline = true

	if n <= 0 {
		return nil
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].CPUPercent > entries[j].CPUPercent })
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
