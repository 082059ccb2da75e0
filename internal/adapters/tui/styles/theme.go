package styles

import "github.com/charmbracelet/lipgloss"

var (
	Primary   = lipgloss.Color("#0EA5E9") // Sky
	Secondary = lipgloss.Color("#22C55E") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Tab and result colors, keyed by category name
	categoryColors = map[string]lipgloss.Color{
		"Material": "#F97316",
		"Model":    "#60A5FA",
		"HDRI":     "#FACC15",
		"Lightset": "#EC4899",
		"Utility":  "#9CA3AF",
	}

	App   = lipgloss.NewStyle().Padding(1, 2)
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1)

	Tab       = lipgloss.NewStyle().Padding(0, 2).Foreground(Muted)
	TabActive = lipgloss.NewStyle().Padding(0, 2).Bold(true).Underline(true)

	Row         = lipgloss.NewStyle()
	RowSelected = lipgloss.NewStyle().Background(Primary).Foreground(White).Bold(true)
	RowDetail   = lipgloss.NewStyle().Foreground(Muted)

	ThumbPresent = lipgloss.NewStyle().Foreground(Secondary).SetString("●")
	ThumbMissing = lipgloss.NewStyle().Foreground(Muted).SetString("○")

	InputLabel   = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	InputField   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Muted).Padding(0, 1)
	InputFocused = InputField.BorderForeground(Primary)

	HelpKey       = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HelpDesc      = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Muted).SetString(" • ")

	Success   = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	ErrorMsg  = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Progress  = lipgloss.NewStyle().Foreground(Warning)
	MutedText = lipgloss.NewStyle().Foreground(Muted)
)

// CategoryColor returns the color of a category name, Primary for unknown names
func CategoryColor(name string) lipgloss.Color {
	if c, ok := categoryColors[name]; ok {
		return c
	}
	return Primary
}
