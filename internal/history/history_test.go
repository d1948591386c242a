package history

import (
	"reflect"
	"testing"

	"github.com/Dicklesworthstone/hoststat/internal/model"
)

func TestSeriesAppend(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		input    []float64
		want     []float64
	}{
		{name: "empty", capacity: 3, input: nil, want: []float64{}},
		{name: "under capacity", capacity: 3, input: []float64{1, 2}, want: []float64{1, 2}},
		{name: "at capacity", capacity: 3, input: []float64{1, 2, 3}, want: []float64{1, 2, 3}},
		{name: "over capacity keeps newest", capacity: 3, input: []float64{1, 2, 3, 4, 5}, want: []float64{3, 4, 5}},
		{name: "zero capacity becomes one", capacity: 0, input: []float64{1, 2}, want: []float64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeries(tt.capacity)
			for _, v := range tt.input {
				s.Append(v)
			}
			if got := s.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeriesCapacityPlusK(t *testing.T) {
	const capacity = DefaultCapacity
	s := NewSeries(capacity)
	var appended []float64
	for i := 0; i < capacity+17; i++ {
		v := float64(i) * 1.5
		s.Append(v)
		appended = append(appended, v)
		if s.Len() > s.Cap() {
			t.Fatalf("Len %d exceeds Cap %d", s.Len(), s.Cap())
		}
	}
	if got, want := s.Values(), appended[len(appended)-capacity:]; !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func TestSeriesValuesIsACopy(t *testing.T) {
	s := NewSeries(2)
	s.Append(1)
	v := s.Values()
	v[0] = 42
	if s.Values()[0] != 1 {
		t.Errorf("mutating Values() changed the series")
	}
}

func TestSet(t *testing.T) {
	set := NewSet(2)
	for i := 1; i <= 3; i++ {
		set.Append(model.Snapshot{
			CPU:     model.CPU{Total: float64(i)},
			Network: model.Network{SentBytesPerSec: float64(i * 10), ReceivedBytesPerSec: float64(i * 100)},
		})
	}
	want := map[string][]float64{
		SeriesCPU:     {2, 3},
		SeriesNetUp:   {20, 30},
		SeriesNetDown: {200, 300},
	}
	if got := set.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
	if got := set.Values(SeriesNetUp); !reflect.DeepEqual(got, []float64{20, 30}) {
		t.Errorf("Values(net_up) = %v", got)
	}
	if set.Values("gpu") != nil {
		t.Errorf("unknown series should be nil")
	}
	if got := set.Names(); !reflect.DeepEqual(got, []string{SeriesCPU, SeriesNetUp, SeriesNetDown}) {
		t.Errorf("Names() = %v", got)
	}
}
