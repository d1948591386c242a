// Package history keeps bounded time series of recent samples.
package history

import (
	"github.com/Dicklesworthstone/hoststat/internal/model"
)

// DefaultCapacity is the number of samples kept per series.
const DefaultCapacity = 30

// Names of the tracked series.
const (
	SeriesCPU     = "cpu"
	SeriesNetUp   = "net_up"
	SeriesNetDown = "net_down"
)

// Series is a fixed-capacity sequence, oldest first. Once full, each
// Append drops the oldest values.
type Series struct {
	capacity int
	values   []float64
}

// NewSeries returns an empty series. Capacities below 1 become 1.
func NewSeries(capacity int) *Series {
	if capacity < 1 {
		capacity = 1
	}
	return &Series{capacity: capacity, values: make([]float64, 0, capacity)}
}

func (s *Series) Append(v float64) {
	s.values = append(s.values, v)
	if over := len(s.values) - s.capacity; over > 0 {
		// Shift in place so the backing array never grows past capacity+1.
		n := copy(s.values, s.values[over:])
		s.values = s.values[:n]
	}
}

// Values returns a copy of the series in insertion order.
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

func (s *Series) Len() int { return len(s.values) }
func (s *Series) Cap() int { return s.capacity }

// Set is the fixed group of series tracked per snapshot.
type Set struct {
	series map[string]*Series
	names  []string
}

// NewSet creates the CPU, upload and download series.
func NewSet(capacity int) *Set {
	names := []string{SeriesCPU, SeriesNetUp, SeriesNetDown}
	set := &Set{series: make(map[string]*Series, len(names)), names: names}
	for _, n := range names {
		set.series[n] = NewSeries(capacity)
	}
	return set
}

// Append records the tracked metrics of one snapshot.
func (s *Set) Append(snap model.Snapshot) {
	s.series[SeriesCPU].Append(snap.CPU.Total)
	s.series[SeriesNetUp].Append(snap.Network.SentBytesPerSec)
	s.series[SeriesNetDown].Append(snap.Network.ReceivedBytesPerSec)
}

// Values returns a copy of the named series, nil for unknown names.
func (s *Set) Values(name string) []float64 {
	series, ok := s.series[name]
	if !ok {
		return nil
	}
	return series.Values()
}

// All returns copies of every series keyed by name.
func (s *Set) All() map[string][]float64 {
	out := make(map[string][]float64, len(s.series))
	for name, series := range s.series {
		out[name] = series.Values()
	}
	return out
}

// Names lists the series in a fixed order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}
