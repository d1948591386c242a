package probe

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/distatus/battery"
	"github.com/pkg/errors"
)

// getBatteries is swapped in tests.
var getBatteries = battery.GetAll

// PowerSource reads the first battery. Capacities are in mWh.
func (h *Host) PowerSource() (PowerSource, error) {
	batteries, err := getBatteries()
	if len(batteries) == 0 || batteries[0] == nil {
		if err != nil && !isNoBattery(err) {
			return PowerSource{}, errors.Wrap(err, "read power source")
		}
		return PowerSource{}, nil
	}

	// Laptops carry a single internal battery; no need to merge more.
	bat := batteries[0]
	ps := PowerSource{
		Present:         true,
		CurrentCapacity: int(bat.Current),
		MaxCapacity:     int(bat.Full),
		Charging:        bat.State == battery.Charging,
		MinutesToEmpty:  -1,
		MinutesToFull:   -1,
	}
	if bat.ChargeRate > 0 {
		switch bat.State {
		case battery.Discharging:
			ps.MinutesToEmpty = int(bat.Current / bat.ChargeRate * 60)
		case battery.Charging:
			if bat.Full > bat.Current {
				ps.MinutesToFull = int((bat.Full - bat.Current) / bat.ChargeRate * 60)
			}
		}
	}
	if online, ok := h.acOnline(); ok {
		ps.PluggedIn = online
	} else {
		ps.PluggedIn = bat.State != battery.Discharging
	}
	return ps, nil
}

func isNoBattery(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// acOnline reports whether any mains supply is online.
func (h *Host) acOnline() (online bool, known bool) {
	supplies, _ := filepath.Glob(h.sysfs("class", "power_supply", "*", "type"))
	for _, typePath := range supplies {
		kind, err := readTrimmed(typePath)
		if err != nil || kind != "Mains" {
			continue
		}
		v, err := readInt(filepath.Join(filepath.Dir(typePath), "online"))
		if err != nil {
			continue
		}
		known = true
		if v == 1 {
			return true, true
		}
	}
	return false, known
}

// ExtendedBattery reads cycle count, capacities and temperature from the
// first BAT* supply in sysfs. Capacities are in mWh like PowerSource:
// energy values are used as is, charge values are multiplied by the
// design voltage and left at 0 when no voltage is reported.
func (h *Host) ExtendedBattery() (ExtendedBattery, error) {
	dirs, _ := filepath.Glob(h.sysfs("class", "power_supply", "BAT*"))
	if len(dirs) == 0 {
		return ExtendedBattery{}, errors.New("no battery in sysfs")
	}
	sort.Strings(dirs)
	dir := dirs[0]

	var ext ExtendedBattery
	if v, err := readInt(filepath.Join(dir, "cycle_count")); err == nil {
		ext.CycleCount = int(v)
	}
	ext.DesignCapacity = readMilliWattHours(dir, "energy_full_design", "charge_full_design")
	ext.MaxCapacity = readMilliWattHours(dir, "energy_full", "charge_full")
	// sysfs reports tenths of a degree.
	if v, err := readInt(filepath.Join(dir, "temp")); err == nil {
		ext.TemperatureCentiC = int(v * 10)
	}
	return ext, nil
}

// readMilliWattHours reads energy (µWh) from energyName, or charge (µAh)
// from chargeName converted through the battery voltage (µV).
func readMilliWattHours(dir, energyName, chargeName string) int {
	if v, err := readInt(filepath.Join(dir, energyName)); err == nil && v > 0 {
		return int(v / 1000)
	}
	charge, err := readInt(filepath.Join(dir, chargeName))
	if err != nil || charge <= 0 {
		return 0
	}
	for _, name := range []string{"voltage_min_design", "voltage_now"} {
		if uv, err := readInt(filepath.Join(dir, name)); err == nil && uv > 0 {
			return int(charge * uv / 1_000_000_000)
		}
	}
	return 0
}
