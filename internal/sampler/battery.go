package sampler

import (
	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

// BatterySampler reads the power source and, when a battery is present,
// its extended properties.
type BatterySampler struct {
	src      probe.BatteryReader
	reporter Reporter
}

func NewBatterySampler(src probe.BatteryReader, reporter Reporter) *BatterySampler {
	return &BatterySampler{src: src, reporter: reporterOrDefault(reporter)}
}

func (s *BatterySampler) Sample() model.Battery {
	ps, err := s.src.PowerSource()
	if err != nil {
		s.reporter.ReadFailed(DomainBattery, err)
		return model.Battery{}
	}
	if !ps.Present {
		return model.Battery{}
	}

	b := model.Battery{
		Present:         true,
		CurrentCapacity: ps.CurrentCapacity,
		MaxCapacity:     ps.MaxCapacity,
		Charging:        ps.Charging,
		PluggedIn:       ps.PluggedIn,
		MinutesToEmpty:  knownMinutes(ps.MinutesToEmpty),
		MinutesToFull:   knownMinutes(ps.MinutesToFull),
	}

	maxCapacity := ps.MaxCapacity
	ext, err := s.src.ExtendedBattery()
	if err != nil {
		s.reporter.ReadFailed(DomainBattery, err)
	} else {
		b.CycleCount = ext.CycleCount
		b.DesignCapacity = ext.DesignCapacity
		b.TemperatureC = float64(ext.TemperatureCentiC) / 100
		if ext.MaxCapacity > 0 {
			maxCapacity = ext.MaxCapacity
		}
	}
	b.HealthPercent = model.HealthPercent(maxCapacity, b.DesignCapacity)
	return b
}

func knownMinutes(m int) int {
	if m < 0 {
		return -1
	}
	return m
}
