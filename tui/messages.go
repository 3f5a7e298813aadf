// ABOUTME: Bubble Tea message types and commands for the admin dashboard refresh loop.
// ABOUTME: Ticks drive periodic re-reads of the inquiry count and override state.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent on each refresh interval.
type TickMsg struct {
	Time time.Time
}

// InquiryCountMsg carries a freshly read inquiry count, or the read error.
type InquiryCountMsg struct {
	Count int
	Err   error
}

// InquiryCounter is the slice of the inquiry store the dashboard needs.
type InquiryCounter interface {
	Count() (int, error)
}

// TickCmd returns a command that sends a TickMsg after the given interval.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// CountInquiriesCmd reads the inquiry count off the Bubble Tea goroutine.
func CountInquiriesCmd(store InquiryCounter) tea.Cmd {
	return func() tea.Msg {
		n, err := store.Count()
		return InquiryCountMsg{Count: n, Err: err}
	}
}
