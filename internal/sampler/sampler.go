// Package sampler turns raw environment counters into derived metrics.
//
// Each sampler owns its baseline and must only be called from one
// goroutine. Samplers never fail: a read error is handed to the Reporter
// and the sampler returns its zero state for that call.
package sampler

import (
	"github.com/sirupsen/logrus"
)

// Domain names used when reporting read failures.
const (
	DomainCPU       = "cpu"
	DomainLoad      = "load"
	DomainMemory    = "memory"
	DomainNetwork   = "network"
	DomainProcesses = "processes"
	DomainBattery   = "battery"
	DomainWiFi      = "wifi"
	DomainDisk      = "disk"
	DomainThermal   = "thermal"
	DomainHost      = "host"
)

// Reporter receives environment read failures.
type Reporter interface {
	ReadFailed(domain string, err error)
}

// LogReporter logs read failures at debug level.
type LogReporter struct {
	Logger logrus.FieldLogger
}

func (r LogReporter) ReadFailed(domain string, err error) {
	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithField("domain", domain).WithError(err).Debug("read failed")
}

func reporterOrDefault(r Reporter) Reporter {
	if r == nil {
		return LogReporter{}
	}
	return r
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
