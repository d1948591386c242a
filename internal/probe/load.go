package probe

import (
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/Dicklesworthstone/hoststat/internal/model"
)

// loadAvg is swapped in tests.
var loadAvg = load.Avg

func (h *Host) LoadAverage() (model.Load, error) {
	avg, err := loadAvg()
	if err != nil {
		return model.Load{}, errors.Wrap(err, "read load average")
	}
	return model.Load{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
}
