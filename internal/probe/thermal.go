package probe

import (
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/host"
)

// ThermalUnknown is returned when no sensor could be read.
const ThermalUnknown = -1

// Fallback thresholds in °C for sensors that do not publish their own.
const (
	fallbackFair     = 75
	fallbackSerious  = 85
	fallbackCritical = 95
)

// sensorsTemperatures is swapped in tests.
var sensorsTemperatures = host.SensorsTemperatures

// ThermalState derives a 0-3 ordinal from the hottest sensor relative to
// its high and critical thresholds.
func (h *Host) ThermalState() (int, error) {
	temps, err := sensorsTemperatures()
	if len(temps) == 0 {
		if err != nil {
			return ThermalUnknown, errors.Wrap(err, "read temperature sensors")
		}
		return ThermalUnknown, nil
	}
	level := 0
	for _, t := range temps {
		if l := sensorLevel(t.Temperature, t.High, t.Critical); l > level {
			level = l
		}
	}
	return level, nil
}

func sensorLevel(temp, high, critical float64) int {
	if temp <= 0 {
		return 0
	}
	if high <= 0 {
		high = fallbackSerious
	}
	if critical <= 0 {
		critical = fallbackCritical
	}
	fair := high - (fallbackSerious - fallbackFair)
	switch {
	case temp >= critical:
		return 3
	case temp >= high:
		return 2
	case temp >= fair:
		return 1
	default:
		return 0
	}
}
