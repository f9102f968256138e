package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Input         string // rendered text input
	ButtonFocused bool
	Spinner       string // rendered spinner frame, shown while InFlight > 0
	InFlight      int
	Notice        string
	Results       []string
	History       []string
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	logo := r.styles.Title.Render("searchgrip")
	if state.InFlight > 0 {
		busy := r.styles.Busy.Render(fmt.Sprintf("%s Searching %d", state.Spinner, state.InFlight))
		logo = lipgloss.JoinHorizontal(lipgloss.Top, logo, "  ", busy)
	}
	content.WriteString(logo)
	content.WriteString("\n")

	button := r.styles.Button.Render("Search")
	if state.ButtonFocused {
		button = r.styles.ButtonFocused.Render("Search")
	}
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, state.Input, "  ", button))
	content.WriteString("\n")

	if state.Notice != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Notice.Render("! " + state.Notice))
		content.WriteString("\n")
	}

	content.WriteString(r.renderList("Results", state.Results, r.styles.Result))
	content.WriteString(r.renderList("Search history", state.History, r.styles.History))

	if state.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderList(title string, items []string, style lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(r.styles.Section.Render(title))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(r.styles.Dim.Render("  (empty)"))
		b.WriteString("\n")
		return b.String()
	}
	for _, item := range items {
		b.WriteString("  ")
		b.WriteString(style.Render(item))
		b.WriteString("\n")
	}
	return b.String()
}

// PagerContent renders both lists for the pager, without the input line
func (r *Renderer) PagerContent(results, history []string) string {
	return r.renderList("Results", results, r.styles.Result) +
		r.renderList("Search history", history, r.styles.History)
}
