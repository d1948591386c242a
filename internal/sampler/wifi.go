package sampler

import (
	"github.com/Dicklesworthstone/hoststat/internal/model"
	"github.com/Dicklesworthstone/hoststat/internal/probe"
)

type WiFiSampler struct {
	src      probe.WirelessReader
	reporter Reporter
}

func NewWiFiSampler(src probe.WirelessReader, reporter Reporter) *WiFiSampler {
	return &WiFiSampler{src: src, reporter: reporterOrDefault(reporter)}
}

// Sample reads the wireless interface. An inactive interface yields only
// its name; the local address is resolved only for an active one.
func (s *WiFiSampler) Sample() model.WiFi {
	w, err := s.src.Wireless()
	if err != nil {
		s.reporter.ReadFailed(DomainWiFi, err)
		return model.WiFi{}
	}
	if !w.Active {
		return model.WiFi{Interface: w.Interface}
	}

	ip, err := s.src.LocalAddress(w.Interface)
	if err != nil {
		s.reporter.ReadFailed(DomainWiFi, err)
		ip = ""
	}
	return model.WiFi{
		Active:    true,
		SSID:      w.SSID,
		RSSI:      w.RSSI,
		Channel:   w.Channel,
		LocalIP:   ip,
		Interface: w.Interface,
	}
}
