package sampler

import (
	"time"

	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

// HostSampler holds static host information and reads uptime on demand.
type HostSampler struct {
	src      probe.HostReader
	reporter Reporter
	info     model.Host
}

// NewHostSampler reads host information once.
func NewHostSampler(src probe.HostReader, reporter Reporter) *HostSampler {
	s := &HostSampler{src: src, reporter: reporterOrDefault(reporter)}
	info, err := src.HostInfo()
	if err != nil {
		s.reporter.ReadFailed(DomainHost, err)
	}
	s.info = info
	return s
}

func (s *HostSampler) Info() model.Host { return s.info }

func (s *HostSampler) Uptime() time.Duration {
	d, err := s.src.Uptime()
	if err != nil {
		s.reporter.ReadFailed(DomainHost, err)
		return 0
	}
	return d
}
