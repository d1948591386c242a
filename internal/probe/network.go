package probe

import (
	"net/netip"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/net"
)

func isLoopback(name string) bool {
	return name == "lo" || name == "lo0" || strings.HasPrefix(name, "lo:")
}

// Interfaces returns byte counters for every non-loopback interface.
func (h *Host) Interfaces() ([]InterfaceCounters, error) {
	counters, err := net.IOCounters(true)
	if err != nil {
		return nil, errors.Wrap(err, "read interface counters")
	}
	out := make([]InterfaceCounters, 0, len(counters))
	for _, c := range counters {
		if isLoopback(c.Name) {
			continue
		}
		out = append(out, InterfaceCounters{
			Name:          c.Name,
			SentBytes:     c.BytesSent,
			ReceivedBytes: c.BytesRecv,
		})
	}
	return out, nil
}

// LocalAddress returns the first IPv4 address bound to iface, or "" if none.
func (h *Host) LocalAddress(iface string) (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", errors.Wrap(err, "list interfaces")
	}
	for _, ifc := range ifaces {
		if ifc.Name != iface {
			continue
		}
		for _, a := range ifc.Addrs {
			if ip, ok := parseIPv4(a.Addr); ok {
				return ip, nil
			}
		}
	}
	return "", nil
}

func parseIPv4(addr string) (string, bool) {
	if p, err := netip.ParsePrefix(addr); err == nil {
		if p.Addr().Is4() {
			return p.Addr().String(), true
		}
		return "", false
	}
	if a, err := netip.ParseAddr(addr); err == nil && a.Is4() {
		return a.String(), true
	}
	return "", false
}
