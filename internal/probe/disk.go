package probe

import (
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/disk"
)

func (h *Host) FilesystemUsage(path string) (FSUsage, error) {
	u, err := disk.Usage(path)
	if err != nil {
		return FSUsage{}, errors.Wrapf(err, "read filesystem usage of %s", path)
	}
	return FSUsage{Total: u.Total, Free: u.Free}, nil
}
