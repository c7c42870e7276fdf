package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Overlay0 = lipgloss.Color("#6c7086")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Yellow   = lipgloss.Color("#f9e2af")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title    = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted    = lipgloss.NewStyle().Foreground(Subtext0)
	Inert    = lipgloss.NewStyle().Foreground(Overlay0).Italic(true)
	Hot      = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good     = lipgloss.NewStyle().Foreground(Green)
	Locked   = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	Speaking = lipgloss.NewStyle().Foreground(Green).Bold(true)

	// Paragraph styles for left-to-right and right-to-left text.
	ParagraphLTR = lipgloss.NewStyle().Foreground(Text).Align(lipgloss.Left)
	ParagraphRTL = lipgloss.NewStyle().Foreground(Text).Align(lipgloss.Right)

	Notice = lipgloss.NewStyle().
		Foreground(Base).
		Background(Red).
		Bold(true).
		Padding(0, 1)
)
