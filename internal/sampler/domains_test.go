package sampler

import (
	"testing"
	"time"

	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

func TestMemorySampler(t *testing.T) {
	sys := newFakeSystem()
	sys.physical = 8 << 30
	sys.pageSize = 16384
	sys.pages = probe.Pages{Active: 100, Wired: 50, Compressed: 25, Free: 10}

	s := NewMemorySampler(sys, nil)
	got := s.Sample()
	want := model.Memory{
		TotalBytes:      8 << 30,
		UsedBytes:       175 * 16384,
		ActiveBytes:     100 * 16384,
		WiredBytes:      50 * 16384,
		CompressedBytes: 25 * 16384,
		FreeBytes:       10 * 16384,
	}
	if got != want {
		t.Errorf("Sample = %+v, want %+v", got, want)
	}
	if got.UsedBytes != got.ActiveBytes+got.WiredBytes+got.CompressedBytes {
		t.Errorf("used is not active+wired+compressed")
	}

	sys.failNext["memory"] = true
	if got := s.Sample(); got != (model.Memory{TotalBytes: 8 << 30}) {
		t.Errorf("failed Sample = %+v, want total only", got)
	}
}

func TestBatterySampler(t *testing.T) {
	tests := []struct {
		name    string
		power   probe.PowerSource
		ext     probe.ExtendedBattery
		extErr  error
		want    model.Battery
		wantExt int
	}{
		{
			name:  "absent",
			power: probe.PowerSource{Present: false, MinutesToEmpty: -1},
			want:  model.Battery{},
		},
		{
			name:  "present with extended info",
			power: probe.PowerSource{Present: true, CurrentCapacity: 80, MaxCapacity: 100, PluggedIn: true, Charging: true, MinutesToEmpty: -1, MinutesToFull: 42},
			ext:   probe.ExtendedBattery{CycleCount: 300, DesignCapacity: 5000, MaxCapacity: 4500, TemperatureCentiC: 2930},
			want: model.Battery{
				Present: true, CurrentCapacity: 80, MaxCapacity: 100, Charging: true, PluggedIn: true,
				MinutesToEmpty: -1, MinutesToFull: 42, CycleCount: 300, DesignCapacity: 5000,
				HealthPercent: 90, TemperatureC: 29.3,
			},
			wantExt: 1,
		},
		{
			name:  "extended read fails",
			power: probe.PowerSource{Present: true, CurrentCapacity: 50, MaxCapacity: 100, MinutesToEmpty: 90, MinutesToFull: -7},
			extErr: errRead,
			want: model.Battery{
				Present: true, CurrentCapacity: 50, MaxCapacity: 100, MinutesToEmpty: 90, MinutesToFull: -1,
			},
			wantExt: 1,
		},
		{
			name:  "health falls back to power source capacity",
			power: probe.PowerSource{Present: true, CurrentCapacity: 10, MaxCapacity: 4000, MinutesToEmpty: -1, MinutesToFull: -1},
			ext:   probe.ExtendedBattery{DesignCapacity: 5000},
			want: model.Battery{
				Present: true, CurrentCapacity: 10, MaxCapacity: 4000, MinutesToEmpty: -1, MinutesToFull: -1,
				DesignCapacity: 5000, HealthPercent: 80,
			},
			wantExt: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newFakeSystem()
			sys.power, sys.ext, sys.extErr = tt.power, tt.ext, tt.extErr
			got := NewBatterySampler(sys, nil).Sample()
			if got != tt.want {
				t.Errorf("Sample = %+v, want %+v", got, tt.want)
			}
			if sys.callCount["battery_ext"] != tt.wantExt {
				t.Errorf("extended reads = %d, want %d", sys.callCount["battery_ext"], tt.wantExt)
			}
		})
	}
}

func TestBatterySamplerReadFailure(t *testing.T) {
	sys := newFakeSystem()
	sys.power = probe.PowerSource{Present: true, MaxCapacity: 100}
	sys.failNext["battery"] = true
	if got := NewBatterySampler(sys, nil).Sample(); got != (model.Battery{}) {
		t.Errorf("Sample = %+v, want zero", got)
	}
}

func TestWiFiSampler(t *testing.T) {
	sys := newFakeSystem()
	sys.localIP = "192.168.1.7"

	sys.wireless = probe.Wireless{Interface: "wlan0"}
	s := NewWiFiSampler(sys, nil)
	if got := s.Sample(); got != (model.WiFi{Interface: "wlan0"}) {
		t.Errorf("inactive Sample = %+v", got)
	}
	if sys.callCount["local_ip"] != 0 {
		t.Errorf("local address resolved for inactive interface")
	}

	sys.wireless = probe.Wireless{Active: true, SSID: "cafe", RSSI: -63, Channel: 6, Interface: "wlan0"}
	want := model.WiFi{Active: true, SSID: "cafe", RSSI: -63, Channel: 6, LocalIP: "192.168.1.7", Interface: "wlan0"}
	if got := s.Sample(); got != want {
		t.Errorf("active Sample = %+v, want %+v", got, want)
	}

	sys.failNext["wifi"] = true
	if got := s.Sample(); got != (model.WiFi{}) {
		t.Errorf("failed Sample = %+v, want zero", got)
	}
}

func TestDiskSampler(t *testing.T) {
	sys := newFakeSystem()
	sys.fs = []probe.FSUsage{{Total: 1000, Free: 250}}
	s := NewDiskSampler(sys, "", nil)
	got := s.Sample()
	if got.Path != DefaultDiskPath || got.TotalBytes != 1000 || got.FreeBytes != 250 {
		t.Errorf("Sample = %+v", got)
	}
	if got.UsagePercent() != 75 {
		t.Errorf("UsagePercent = %v, want 75", got.UsagePercent())
	}

	sys.failNext["disk"] = true
	if got := s.Sample(); got != (model.Disk{Path: DefaultDiskPath}) {
		t.Errorf("failed Sample = %+v", got)
	}
}

func TestHostSampler(t *testing.T) {
	sys := newFakeSystem()
	sys.host = model.Host{Hostname: "box", Cores: 8}
	sys.uptime = 90 * time.Minute
	s := NewHostSampler(sys, nil)
	if s.Info().Hostname != "box" || s.Uptime() != 90*time.Minute {
		t.Errorf("HostSampler = %+v / %v", s.Info(), s.Uptime())
	}
}
