package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the palette for the UI.
type Theme struct {
	Surface     string
	SelectionBg string
	Text        string
	Muted       string
	Accent      string
	Success     string
	Warning     string
	Danger      string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Selected  lipgloss.Style
	Checked   lipgloss.Style
	PanelHead lipgloss.Style
}

// draculaTheme follows the official Dracula palette.
func draculaTheme() Theme {
	return Theme{
		Surface:     "#282A36",
		SelectionBg: "#44475A",
		Text:        "#F8F8F2",
		Muted:       "#6272A4",
		Accent:      "#BD93F9",
		Success:     "#50FA7B",
		Warning:     "#FFB86C",
		Danger:      "#FF5555",
	}
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.Text)),
		Checked:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		PanelHead: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true).Underline(true),
	}
}
