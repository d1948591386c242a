package probe

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Wireless reads the first interface listed in /proc/net/wireless. SSID and
// channel come from iwgetid; either may be empty if the helper is missing.
func (h *Host) Wireless() (Wireless, error) {
	f, err := os.Open(h.procfs("net", "wireless"))
	if err != nil {
		if os.IsNotExist(err) {
			return Wireless{}, nil
		}
		return Wireless{}, errors.Wrap(err, "open wireless stats")
	}
	defer f.Close()

	name, rssi, ok := parseWireless(bufio.NewScanner(f))
	if !ok {
		return Wireless{}, nil
	}

	state, _ := readTrimmed(h.sysfs("class", "net", name, "operstate"))
	if state != "up" {
		return Wireless{Interface: name}, nil
	}

	w := Wireless{Active: true, Interface: name, RSSI: rssi}
	if out, err := h.run(commandTimeout, "iwgetid", "-r", name); err == nil {
		w.SSID = strings.TrimSpace(out)
	}
	if out, err := h.run(commandTimeout, "iwgetid", "-c", "-r", name); err == nil {
		w.Channel, _ = strconv.Atoi(strings.TrimSpace(out))
	}
	return w, nil
}

// parseWireless returns the first interface and its signal level in dBm.
//
//	Inter-| sta-|   Quality        |   Discarded packets
//	 face | tus | link level noise |  nwid  crypt   frag ...
//	wlan0: 0000   54.  -56.  -256        0      0      0 ...
func parseWireless(sc *bufio.Scanner) (string, int, bool) {
	for line := 0; sc.Scan(); line++ {
		if line < 2 {
			continue
		}
		name, rest, found := strings.Cut(sc.Text(), ":")
		if !found {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) < 3 {
			continue
		}
		level, err := strconv.ParseFloat(strings.TrimSuffix(fields[2], "."), 64)
		if err != nil {
			level = 0
		}
		// Some drivers print the dBm value as an unsigned byte.
		if level > 0 {
			level -= 256
		}
		return strings.TrimSpace(name), int(level), true
	}
	return "", 0, false
}
