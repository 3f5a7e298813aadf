// ABOUTME: Defines lipgloss style constants for the admin dashboard panels and slot rows.
// ABOUTME: Provides StyleForSlot to mark overridden slots apart from ones still on defaults.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Slot rows
	DefaultSlotStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	OverriddenSlotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	SlotKeyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Width(26)
	SlotKindStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(7)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	// Confirmation prompt
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// StyleForSlot returns the row style for a slot depending on whether an
// override is in effect for it.
func StyleForSlot(overridden bool) lipgloss.Style {
	if overridden {
		return OverriddenSlotStyle
	}
	return DefaultSlotStyle
}
