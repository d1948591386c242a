package probe

import (
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/Dicklesworthstone/hoststat/internal/model"
)

func (h *Host) HostInfo() (model.Host, error) {
	info, err := host.Info()
	if err != nil {
		return model.Host{Arch: runtime.GOARCH, Cores: h.ActiveProcessors()}, errors.Wrap(err, "read host info")
	}
	out := model.Host{
		Hostname:        info.Hostname,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		Arch:            info.KernelArch,
		Cores:           h.ActiveProcessors(),
	}
	if out.Arch == "" {
		out.Arch = runtime.GOARCH
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		out.CPUModel = cpus[0].ModelName
	}
	return out, nil
}

func (h *Host) Uptime() (time.Duration, error) {
	secs, err := host.Uptime()
	if err != nil {
		return 0, errors.Wrap(err, "read uptime")
	}
	return time.Duration(secs) * time.Second, nil
}
