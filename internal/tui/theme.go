package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the TUI.
// Inspired by btop and Tokyo Night color scheme.
type Theme struct {
	// Backgrounds
	BgDark   lipgloss.Color // Deep background
	BgAccent lipgloss.Color // Accent background (selection)

	// Text
	TextPrimary lipgloss.Color // Main text
	TextDim     lipgloss.Color // Secondary/dim text
	TextMuted   lipgloss.Color // Very dim text

	// Borders
	Border        lipgloss.Color // Default border
	BorderFocused lipgloss.Color // Focused/active border

	// Semantic colors
	Accent  lipgloss.Color // Primary accent (blue)
	Success lipgloss.Color // Success/positive (green)
	Warning lipgloss.Color // Warning/caution (amber)
	Error   lipgloss.Color // Error/danger (red/pink)
	Info    lipgloss.Color // Info/neutral (cyan)
	Purple  lipgloss.Color // Alternative accent
}

// DefaultTheme returns the default dark theme inspired by btop/Tokyo Night.
var DefaultTheme = Theme{
	BgDark:   lipgloss.Color("#1a1b26"),
	BgAccent: lipgloss.Color("#414868"),

	TextPrimary: lipgloss.Color("#c0caf5"),
	TextDim:     lipgloss.Color("#565f89"),
	TextMuted:   lipgloss.Color("#414868"),

	Border:        lipgloss.Color("#414868"),
	BorderFocused: lipgloss.Color("#7aa2f7"),

	Accent:  lipgloss.Color("#7aa2f7"), // Blue
	Success: lipgloss.Color("#9ece6a"), // Green
	Warning: lipgloss.Color("#e0af68"), // Amber
	Error:   lipgloss.Color("#f7768e"), // Red/Pink
	Info:    lipgloss.Color("#7dcfff"), // Cyan
	Purple:  lipgloss.Color("#bb9af7"), // Purple
}

// CategoryColor maps a token category to its accent color. Categories the
// palette does not know fall back to the neutral info color.
func (t Theme) CategoryColor(category string) lipgloss.Color {
	switch category {
	case "color":
		return t.Accent
	case "spacing":
		return t.Success
	case "font":
		return t.Purple
	case "shadow":
		return t.Warning
	default:
		return t.Info
	}
}

// Styles provides pre-configured lipgloss styles using the theme.
type Styles struct {
	Base    lipgloss.Style
	Dim     lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Title   lipgloss.Style
	Header  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Selected   lipgloss.Style
	KeyBinding lipgloss.Style
	KeyHint    lipgloss.Style

	Panel      lipgloss.Style
	Box        lipgloss.Style
	BoxFocused lipgloss.Style

	Footer lipgloss.Style
}

// NewStyles creates a new Styles instance from a Theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Base:  lipgloss.NewStyle().Foreground(t.TextPrimary),
		Dim:   lipgloss.NewStyle().Foreground(t.TextDim),
		Muted: lipgloss.NewStyle().Foreground(t.TextMuted),
		Bold:  lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		Success: lipgloss.NewStyle().Foreground(t.Success),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Info:    lipgloss.NewStyle().Foreground(t.Info),

		Selected: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		KeyBinding: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		KeyHint: lipgloss.NewStyle().
			Foreground(t.TextDim),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		BoxFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocused).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.TextDim),
	}
}

// DefaultStyles returns styles using the default theme.
var DefaultStyles = NewStyles(DefaultTheme)

// CheckboxIcon returns a styled checkbox.
func CheckboxIcon(checked bool, s Styles) string {
	if checked {
		return s.Success.Render("[✓]")
	}
	return s.Dim.Render("[ ]")
}
