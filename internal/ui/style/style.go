// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Thread = lipgloss.Color("#C2410C")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0B0F19")
	Mist   = lipgloss.Color("#F6F7FB")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Panel styles for the pattern info view.
var (
	// TitleStyle renders the design label line.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Thread)

	// KeyStyle renders the left column of the info panel.
	KeyStyle = lipgloss.NewStyle().Foreground(Slate).Width(14)

	// ValueStyle renders the right column of the info panel.
	ValueStyle = lipgloss.NewStyle()

	// BorderStyle frames the info panel.
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Slate).
			Padding(0, 1)
)
