// ABOUTME: Top-level Bubble Tea model for the admin dashboard: slot list, override state, inquiry count.
// ABOUTME: Implements tea.Model (Init, Update, View) with a viewport slot list and a one-line status bar.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/miravalle/website/content"
)

const refreshInterval = 2 * time.Second

// DashboardModel is the Bubble Tea model for the operator dashboard. It shows
// every editable slot with its current value and marks the ones carrying an
// override, alongside a live inquiry count.
type DashboardModel struct {
	contents  *content.Store
	registry  *content.Registry
	inquiries InquiryCounter
	addr      string

	viewport  viewport.Model
	startTime time.Time

	inquiryCount int
	countErr     error

	confirmReset bool
	notice       string

	width  int
	height int
}

// NewDashboardModel creates a dashboard over the given stores. addr is the
// listen address of the web server, shown in the status bar.
func NewDashboardModel(contents *content.Store, registry *content.Registry, inquiries InquiryCounter, addr string) DashboardModel {
	vp := viewport.New(80, 20)
	return DashboardModel{
		contents:  contents,
		registry:  registry,
		inquiries: inquiries,
		addr:      addr,
		viewport:  vp,
		startTime: time.Now(),
	}
}

// Init implements tea.Model. Starts the refresh loop and the first count read.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		CountInquiriesCmd(m.inquiries),
		TickCmd(refreshInterval),
	)
}

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = maxInt(msg.Width-4, 1)
		m.viewport.Height = maxInt(msg.Height-5, 1)
		m.syncViewport()
		return m, nil

	case TickMsg:
		return m, tea.Batch(
			CountInquiriesCmd(m.inquiries),
			TickCmd(refreshInterval),
		)

	case InquiryCountMsg:
		m.countErr = msg.Err
		if msg.Err == nil {
			m.inquiryCount = msg.Count
		}
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleKeyMsg processes keyboard input. A reset needs a confirming second
// keypress; any other key cancels the pending reset.
func (m DashboardModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmReset {
		m.confirmReset = false
		if msg.String() == "y" {
			n := m.contents.Len()
			m.contents.ResetAll()
			m.notice = fmt.Sprintf("Cleared %d override(s), defaults restored", n)
		} else {
			m.notice = "Reset cancelled"
		}
		m.syncViewport()
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		if m.contents.Len() == 0 {
			m.notice = "No overrides to reset"
			return m, nil
		}
		m.confirmReset = true
		m.notice = ""
		return m, nil
	case "up", "k":
		m.viewport.ScrollUp(1)
		return m, nil
	case "down", "j":
		m.viewport.ScrollDown(1)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 8 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 40x8.", m.width, m.height)
	}

	title := TitleStyle.Render("MIRAVALLE CONTENT DASHBOARD")

	body := BorderStyle.
		Width(m.width - 2).
		Render(m.viewport.View())

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.statusLine())

	return b.String()
}

// statusLine renders the bottom bar: address, slot and override counts,
// inquiry count, uptime, and the active prompt or notice.
func (m DashboardModel) statusLine() string {
	manifest := m.registry.Manifest()

	parts := []string{
		fmt.Sprintf("serving %s", m.addr),
		fmt.Sprintf("%d/%d slots edited", m.contents.Len(), manifest.Len()),
	}
	if m.countErr != nil {
		parts = append(parts, "inquiries: unavailable")
	} else {
		parts = append(parts, fmt.Sprintf("%d inquiries", m.inquiryCount))
	}
	parts = append(parts, fmt.Sprintf("up %s", formatElapsed(time.Since(m.startTime))))
	parts = append(parts, "r reset | q quit")

	line := StatusBarStyle.Width(m.width).Render(strings.Join(parts, " | "))

	if m.confirmReset {
		return line + "\n" + ConfirmStyle.Render("Discard every edit and restore defaults? (y/N)")
	}
	if m.notice != "" {
		return line + "\n" + NoticeStyle.Render(m.notice)
	}
	return line
}

// syncViewport rebuilds the slot list from the manifest and override store.
func (m *DashboardModel) syncViewport() {
	m.viewport.SetContent(renderSlotList(m.registry.Manifest(), m.contents))
}

// renderSlotList formats one row per manifest slot: key, kind, and the current
// value, with overridden rows highlighted and stamped "edited".
func renderSlotList(manifest *content.Manifest, store *content.Store) string {
	slots := manifest.Slots()
	if len(slots) == 0 {
		return "No editable slots in the manifest"
	}

	var lines []string
	section := ""
	for _, slot := range slots {
		if slot.Section != section {
			section = slot.Section
			lines = append(lines, "", TitleStyle.Render(strings.ToUpper(section)))
		}

		value, overridden := store.Lookup(slot.Key)
		if !overridden {
			value = slot.Default
		}

		marker := "       "
		if overridden {
			marker = "edited "
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top,
			SlotKeyStyle.Render(slot.Key),
			SlotKindStyle.Render(string(slot.Kind)),
			StyleForSlot(overridden).Render(marker+previewValue(value)),
		)
		lines = append(lines, row)
	}

	return strings.Join(lines, "\n")
}

// previewValue flattens a slot value to a single truncated line. Data URIs
// are summarized by size rather than dumped.
func previewValue(value string) string {
	if strings.HasPrefix(value, "data:") {
		mime := value
		if i := strings.IndexAny(value, ";,"); i > 0 {
			mime = value[:i]
		}
		return fmt.Sprintf("[uploaded %s, %d bytes]", strings.TrimPrefix(mime, "data:"), len(value))
	}

	value = strings.ReplaceAll(value, "\n", " ")
	const max = 60
	if len(value) > max {
		return value[:max-3] + "..."
	}
	return value
}

// formatElapsed formats a duration as a human-readable string.
// Durations under a minute show as seconds (e.g. "12s").
// Durations of a minute or more show as minutes and seconds (e.g. "2m30s").
func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) - minutes*60
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
