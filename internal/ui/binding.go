package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"searchgrip/internal/search"
)

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Binding is the search.View the controller talks to. The term is a
// snapshot the model refreshes on every keystroke, and renders are turned
// into messages so only the program's goroutine touches the lists.
type Binding struct {
	mu     sync.RWMutex
	term   string
	sender Sender
}

func NewBinding() *Binding {
	return &Binding{}
}

// SetSender sets where renders are delivered. Renders before this are dropped.
func (b *Binding) SetSender(s Sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sender = s
}

// SetTerm records the current text of the search field
func (b *Binding) SetTerm(term string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.term = term
}

func (b *Binding) SearchTerm() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.term
}

func (b *Binding) RenderResults(results []string) {
	b.send(resultsMsg{results: append([]string(nil), results...)})
}

func (b *Binding) RenderHistory(entries []string) {
	b.send(historyMsg{entries: append([]string(nil), entries...)})
}

func (b *Binding) ShowError(err error) {
	b.send(noticeMsg{err: err})
}

func (b *Binding) send(msg tea.Msg) {
	b.mu.RLock()
	s := b.sender
	b.mu.RUnlock()
	if s != nil {
		s.Send(msg)
	}
}

var _ search.View = (*Binding)(nil)
