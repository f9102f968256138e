// Package plain is a line-oriented view binding for non-interactive use
package plain

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// View writes lists as numbered lines. Styling is off unless WithStyles is used.
type View struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	term    string
	styled  bool
	results lipgloss.Style
	history lipgloss.Style
	errs    lipgloss.Style
	header  lipgloss.Style
}

// New creates a view writing lists to out and notices to errOut
func New(out, errOut io.Writer) *View {
	return &View{out: out, errOut: errOut}
}

// WithStyles colours results, history and notices
func (v *View) WithStyles() *View {
	v.styled = true
	v.results = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	v.history = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	v.errs = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	v.header = lipgloss.NewStyle().Bold(true)
	return v
}

// SetTerm sets the term returned by the next SearchTerm call
func (v *View) SetTerm(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.term = term
}

func (v *View) SearchTerm() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.term
}

func (v *View) RenderResults(results []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.writeList("results", results, v.results)
}

func (v *View) RenderHistory(entries []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.writeList("history", entries, v.history)
}

func (v *View) ShowError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.errOut, v.style(v.errs, "error: "+err.Error()))
}

func (v *View) writeList(title string, items []string, s lipgloss.Style) {
	fmt.Fprintf(v.out, "%s (%d)\n", v.style(v.header, title), len(items))
	for i, item := range items {
		fmt.Fprintf(v.out, "%3d. %s\n", i+1, v.style(s, item))
	}
}

func (v *View) style(s lipgloss.Style, text string) string {
	if !v.styled {
		return text
	}
	return s.Render(text)
}
