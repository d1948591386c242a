package sampler

import (
	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

// MemorySampler reports absolute page accounting. It keeps no baseline.
type MemorySampler struct {
	src      probe.MemoryReader
	reporter Reporter

	totalBytes uint64
	pageSize   uint64
}

// NewMemorySampler reads physical memory size and page size once.
func NewMemorySampler(src probe.MemoryReader, reporter Reporter) *MemorySampler {
	s := &MemorySampler{src: src, reporter: reporterOrDefault(reporter), pageSize: src.PageSize()}
	total, err := src.PhysicalMemory()
	if err != nil {
		s.reporter.ReadFailed(DomainMemory, err)
	}
	s.totalBytes = total
	return s
}

func (s *MemorySampler) Sample() model.Memory {
	pages, err := s.src.MemoryPages()
	if err != nil {
		s.reporter.ReadFailed(DomainMemory, err)
		return model.Memory{TotalBytes: s.totalBytes}
	}
	active := pages.Active * s.pageSize
	wired := pages.Wired * s.pageSize
	compressed := pages.Compressed * s.pageSize
	return model.Memory{
		TotalBytes:      s.totalBytes,
		UsedBytes:       active + wired + compressed,
		ActiveBytes:     active,
		WiredBytes:      wired,
		CompressedBytes: compressed,
		FreeBytes:       pages.Free * s.pageSize,
	}
}
