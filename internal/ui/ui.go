// Package ui renders hoststat snapshots with Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/hoststat/internal/history"
	"github.com/Dicklesworthstone/hoststat/internal/hub"
	"github.com/Dicklesworthstone/hoststat/internal/model"
)

// Visibility is told when the detail panel is shown or hidden.
type Visibility interface {
	SetVisible(visible bool)
}

// VisibilityFunc adapts a function to Visibility.
type VisibilityFunc func(visible bool)

func (f VisibilityFunc) SetVisible(visible bool) { f(visible) }

// Sender delivers messages into a running program; *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Model keeps the last status and detail payloads. The status line is
// fed on every tick; the detail panel only while it is open.
type Model struct {
	vis        Visibility
	cancel     context.CancelFunc
	status     lightMsg
	detail     richMsg
	hasStatus  bool
	hasDetail  bool
	showDetail bool
	width      int
	height     int
}

func New(vis Visibility, cancel context.CancelFunc) *Model {
	if cancel == nil {
		cancel = func() {}
	}
	return &Model{
		vis:    vis,
		cancel: cancel,
		width:  120,
		height: 40,
	}
}

// Messages
type (
	lightMsg struct {
		snap       model.Snapshot
		cpuHistory []float64
	}
	richMsg        hub.RichUpdate
	visibilityDone struct{}
)

// Subscribers adapts hub callbacks into program messages.
func Subscribers(s Sender) (hub.LightFunc, hub.RichFunc) {
	light := func(snap model.Snapshot, cpuHistory []float64) {
		s.Send(lightMsg{snap: snap, cpuHistory: cpuHistory})
	}
	rich := func(u hub.RichUpdate) {
		s.Send(richMsg(u))
	}
	return light, rich
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case "d":
			m.showDetail = !m.showDetail
			return m, m.setVisible(m.showDetail)
		}
	case lightMsg:
		m.status = msg
		m.hasStatus = true
	case richMsg:
		m.detail = msg
		m.hasDetail = true
	}
	return m, nil
}

// setVisible runs off the event loop: the hub may deliver a snapshot
// through Send before SetVisible returns.
func (m *Model) setVisible(visible bool) tea.Cmd {
	if m.vis == nil {
		return nil
	}
	return func() tea.Msg {
		m.vis.SetVisible(visible)
		return visibilityDone{}
	}
}

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	gaugeFill   = "█"
	gaugeEmpty  = "░"
	sparkRunes  = []rune("▁▂▃▄▅▆▇█")
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

func (m *Model) View() string {
	header := titleStyle.Render("hoststat")
	if m.hasStatus {
		header += "  " + subtleStyle.Render(m.status.snap.Timestamp.Format("Mon Jan 2 15:04:05 MST 2006"))
	}
	footer := subtleStyle.Render("d details · q quit")

	if !m.hasStatus {
		return lipgloss.JoinVertical(lipgloss.Left, header, subtleStyle.Render("sampling…"), footer)
	}

	parts := []string{header, statusLine(m.status.snap, m.status.cpuHistory)}
	if m.showDetail {
		if m.hasDetail {
			parts = append(parts, detailPanel(hub.RichUpdate(m.detail)))
		} else {
			parts = append(parts, subtleStyle.Render("waiting for details…"))
		}
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func statusLine(s model.Snapshot, cpuHistory []float64) string {
	return fmt.Sprintf("%s %5.1f%% %s  %s %5.1f%%  ↑ %s  ↓ %s",
		labelStyle.Render("CPU"), s.CPU.Total, sparkline(cpuHistory, 100),
		labelStyle.Render("MEM"), s.Memory.UsagePercent(),
		formatSpeed(s.Network.SentBytesPerSec),
		formatSpeed(s.Network.ReceivedBytesPerSec))
}

func detailPanel(u hub.RichUpdate) string {
	s := u.Snapshot

	hostLine := subtleStyle.Render(fmt.Sprintf("%s · %s %s · kernel %s · %s · %s (%d cores) · up %s",
		u.Host.Hostname, u.Host.Platform, u.Host.PlatformVersion, u.Host.KernelVersion,
		u.Host.Arch, truncate(u.Host.CPUModel, 32), u.Host.Cores, formatUptime(s.Uptime.Seconds())))

	cores := make([]string, 0, s.CPU.Cores())
	for i, pct := range s.CPU.PerCore {
		cores = append(cores, fmt.Sprintf("%2d %s", i, gaugeBar(pct, 16)))
	}
	cpuCard := card("CPU", fmt.Sprintf("%s  load %.2f %.2f %.2f\n%s",
		gaugeBar(s.CPU.Total, 20), s.Load.Load1, s.Load.Load5, s.Load.Load15,
		strings.Join(cores, "\n")))

	mem := s.Memory
	memCard := card("Memory",
		fmt.Sprintf("%s\n%.1f/%.1f GiB\nactive %.1f  wired %.1f\ncompressed %.1f  free %.1f",
			gaugeBar(mem.UsagePercent(), 20),
			bytesToGiB(mem.UsedBytes), bytesToGiB(mem.TotalBytes),
			bytesToGiB(mem.ActiveBytes), bytesToGiB(mem.WiredBytes),
			bytesToGiB(mem.CompressedBytes), bytesToGiB(mem.FreeBytes)))

	netCard := card("Network",
		fmt.Sprintf("↑ %-10s %s\n↓ %-10s %s",
			formatSpeed(s.Network.SentBytesPerSec), sparkline(u.History[history.SeriesNetUp], 0),
			formatSpeed(s.Network.ReceivedBytesPerSec), sparkline(u.History[history.SeriesNetDown], 0)))

	diskCard := card("Disk "+s.Disk.Path,
		fmt.Sprintf("%s\n%.1f/%.1f GiB",
			gaugeBar(s.Disk.UsagePercent(), 20),
			bytesToGiB(s.Disk.UsedBytes()), bytesToGiB(s.Disk.TotalBytes)))

	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cpuCard, memCard, netCard, diskCard)

	cards := []string{batteryCard(s.Battery), wifiCard(s.WiFi), thermalCard(s.Thermal)}
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	topCard := card("Top processes", renderTable(u.Top, 10))

	return lipgloss.JoinVertical(lipgloss.Left, hostLine, row1, row2, topCard)
}

func batteryCard(b model.Battery) string {
	if !b.Present {
		return card("Battery", subtleStyle.Render("none"))
	}
	state := "on battery"
	switch {
	case b.Charging:
		state = "charging, full in " + formatMinutes(b.MinutesToFull)
	case b.PluggedIn:
		state = "plugged in"
	default:
		state += ", " + formatMinutes(b.MinutesToEmpty) + " left"
	}
	return card("Battery",
		fmt.Sprintf("%s\n%s\ncycles %d  health %.0f%%  %.1f°C",
			gaugeBar(b.ChargePercent(), 16), state, b.CycleCount, b.HealthPercent, b.TemperatureC))
}

func wifiCard(w model.WiFi) string {
	if !w.Active {
		return card("Wi-Fi", subtleStyle.Render("disconnected "+w.Interface))
	}
	bars := strings.Repeat("▮", w.SignalBars()) + strings.Repeat("▯", 4-w.SignalBars())
	return card("Wi-Fi",
		fmt.Sprintf("%s %s\n%d dBm  ch %d\n%s %s",
			truncate(w.SSID, 20), bars, w.RSSI, w.Channel, w.Interface, w.LocalIP))
}

func thermalCard(t model.ThermalLevel) string {
	label := t.String()
	if t >= model.ThermalSerious {
		label = warnStyle.Render(label)
	}
	return card("Thermal", label)
}

// Helpers
func gaugeBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int((pct / 100) * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

// sparkline scales values against ceiling, or against their own maximum
// when ceiling is not positive.
func sparkline(values []float64, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}
	if ceiling <= 0 {
		for _, v := range values {
			ceiling = max(ceiling, v)
		}
	}
	top := len(sparkRunes) - 1
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if ceiling > 0 && v > 0 {
			idx = int(v / ceiling * float64(top))
		}
		b.WriteRune(sparkRunes[min(max(idx, 0), top)])
	}
	return b.String()
}

func card(title, body string) string {
	titleStr := labelStyle.Render(title)
	content := titleStr + "\n" + body
	return cardStyle.Render(content)
}

func renderTable(rows []model.Process, limit int) string {
	n := min(limit, len(rows))
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %-7s %6s %6s\n", "name", "pid", "cpu", "mem")
	for i := 0; i < n; i++ {
		r := rows[i]
		fmt.Fprintf(&b, "%-20s %-7d %6.1f %6.1f\n",
			truncate(r.Name, 20), r.PID, r.CPUPercent, r.MemPercent)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatSpeed(bytesPerSec float64) string {
	units := []string{"B/s", "KB/s", "MB/s", "GB/s"}
	v := bytesPerSec
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%.0f %s", v, units[i])
	}
	return fmt.Sprintf("%.1f %s", v, units[i])
}

func formatMinutes(minutes int) string {
	if minutes < 0 {
		return "--"
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

func formatUptime(seconds float64) string {
	total := int(seconds)
	days, rem := total/86400, total%86400
	hours, mins := rem/3600, rem%3600/60
	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

func bytesToGiB(b uint64) float64 { return float64(b) / (1024 * 1024 * 1024) }

// NewProgram wraps m in a full-screen program.
func NewProgram(m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}
