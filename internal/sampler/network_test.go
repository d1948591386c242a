package sampler

import (
	"testing"

	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

func TestNetworkSampler(t *testing.T) {
	tests := []struct {
		name     string
		first    []probe.InterfaceCounters
		second   []probe.InterfaceCounters
		dt       float64
		wantSent float64
		wantRecv float64
	}{
		{
			name:     "steady traffic",
			first:    []probe.InterfaceCounters{{Name: "en0", SentBytes: 1_000_000, ReceivedBytes: 2_000_000}},
			second:   []probe.InterfaceCounters{{Name: "en0", SentBytes: 1_050_000, ReceivedBytes: 2_500_000}},
			dt:       5,
			wantSent: 10_000,
			wantRecv: 100_000,
		},
		{
			name:     "counter reset clamps to zero",
			first:    []probe.InterfaceCounters{{Name: "en0", SentBytes: 1_050_000, ReceivedBytes: 10}},
			second:   []probe.InterfaceCounters{{Name: "en0", SentBytes: 500_000, ReceivedBytes: 40}},
			dt:       3,
			wantSent: 0,
			wantRecv: 10,
		},
		{
			name: "sums across interfaces",
			first: []probe.InterfaceCounters{
				{Name: "en0", SentBytes: 100, ReceivedBytes: 100},
				{Name: "en1", SentBytes: 100, ReceivedBytes: 100},
			},
			second: []probe.InterfaceCounters{
				{Name: "en0", SentBytes: 300, ReceivedBytes: 100},
				{Name: "en1", SentBytes: 300, ReceivedBytes: 500},
			},
			dt:       2,
			wantSent: 200,
			wantRecv: 200,
		},
		{
			name:   "no elapsed time",
			first:  []probe.InterfaceCounters{{Name: "en0", SentBytes: 1}},
			second: []probe.InterfaceCounters{{Name: "en0", SentBytes: 100}},
			dt:     0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newFakeSystem()
			sys.ifaces = [][]probe.InterfaceCounters{tt.first, tt.second}
			sys.clock = []float64{100, 100 + tt.dt}
			s := NewNetworkSampler(sys, sys, nil)

			if first := s.Sample(); first.SentBytesPerSec != 0 || first.ReceivedBytesPerSec != 0 {
				t.Errorf("first Sample = %+v, want zero rates", first)
			}
			got := s.Sample()
			if got.SentBytesPerSec != tt.wantSent || got.ReceivedBytesPerSec != tt.wantRecv {
				t.Errorf("Sample = %+v, want sent %v recv %v", got, tt.wantSent, tt.wantRecv)
			}
		})
	}
}

func TestNetworkSamplerReadFailureKeepsBaseline(t *testing.T) {
	sys := newFakeSystem()
	sys.ifaces = [][]probe.InterfaceCounters{
		{{Name: "en0", SentBytes: 0}},
		{{Name: "en0", SentBytes: 0}},
		{{Name: "en0", SentBytes: 600}},
	}
	sys.clock = []float64{0, 6}
	rep := &recordingReporter{}
	s := NewNetworkSampler(sys, sys, rep)
	s.Sample()

	sys.failNext["network"] = true
	if got := s.Sample(); got.SentBytesPerSec != 0 {
		t.Errorf("failed Sample = %+v, want zero", got)
	}
	if len(rep.domains) != 1 || rep.domains[0] != DomainNetwork {
		t.Errorf("reported = %v, want [network]", rep.domains)
	}

	if got := s.Sample(); got.SentBytesPerSec != 100 {
		t.Errorf("Sample after failure = %+v, want 100 B/s", got)
	}
}
