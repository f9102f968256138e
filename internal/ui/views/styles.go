package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Section       lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Result        lipgloss.Style
	History       lipgloss.Style
	Notice        lipgloss.Style
	Busy          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			MarginTop(1),
		Dim:  lipgloss.NewStyle().Faint(true),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().Padding(1, 2),
		Button: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")),
		ButtonFocused: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("33")),
		Result:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green, a match
		History: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue, context
		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Busy:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
