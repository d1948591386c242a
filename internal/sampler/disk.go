package sampler

import (
	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

// DefaultDiskPath is the mount point reported when none is configured.
const DefaultDiskPath = "/"

type DiskSampler struct {
	src      probe.FilesystemReader
	reporter Reporter
	path     string
}

func NewDiskSampler(src probe.FilesystemReader, path string, reporter Reporter) *DiskSampler {
	if path == "" {
		path = DefaultDiskPath
	}
	return &DiskSampler{src: src, path: path, reporter: reporterOrDefault(reporter)}
}

func (s *DiskSampler) Sample() model.Disk {
	u, err := s.src.FilesystemUsage(s.path)
	if err != nil {
		s.reporter.ReadFailed(DomainDisk, err)
		return model.Disk{Path: s.path}
	}
	return model.Disk{Path: s.path, TotalBytes: u.Total, FreeBytes: u.Free}
}
