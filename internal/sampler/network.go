package sampler

import (
	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

// NetworkSampler derives send/receive rates from cross-interface byte totals.
type NetworkSampler struct {
	src      probe.NetworkReader
	clock    probe.Clock
	reporter Reporter

	hasBaseline bool
	prevSent    uint64
	prevRecv    uint64
	prevTime    float64
}

func NewNetworkSampler(src probe.NetworkReader, clock probe.Clock, reporter Reporter) *NetworkSampler {
	return &NetworkSampler{src: src, clock: clock, reporter: reporterOrDefault(reporter)}
}

// Sample returns bytes per second since the previous call. A total that
// went down (an interface reset) counts as zero traffic rather than wrapping.
func (s *NetworkSampler) Sample() model.Network {
	ifaces, err := s.src.Interfaces()
	if err != nil {
		s.reporter.ReadFailed(DomainNetwork, err)
		return model.Network{}
	}
	var sent, recv uint64
	for _, ifc := range ifaces {
		sent += ifc.SentBytes
		recv += ifc.ReceivedBytes
	}
	now := s.clock.Now()

	var out model.Network
	if s.hasBaseline {
		if dt := now - s.prevTime; dt > 0 {
			out.SentBytesPerSec = float64(clampedDelta(sent, s.prevSent)) / dt
			out.ReceivedBytesPerSec = float64(clampedDelta(recv, s.prevRecv)) / dt
		}
	}

	s.prevSent, s.prevRecv, s.prevTime = sent, recv, now
	s.hasBaseline = true
	return out
}

func clampedDelta(cur, prev uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}
