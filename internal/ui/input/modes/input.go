package modes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchgrip/internal/domain"
	"searchgrip/internal/ui/input/types"
)

// InputMode handles keys while the search field has focus
type InputMode struct {
	keys      types.KeyMap
	textInput *textinput.Model
}

func NewInputMode(keys types.KeyMap, ti *textinput.Model) *InputMode {
	return &InputMode{keys: keys, textInput: ti}
}

func (m *InputMode) Name() string {
	return "input"
}

func (m *InputMode) Enter(ctx types.Context) []types.Action {
	m.textInput.Focus()
	return nil
}

func (m *InputMode) Exit(ctx types.Context) []types.Action {
	m.textInput.Blur()
	return nil
}

// HandleKey leaves printable keys unconsumed so the handler feeds them to
// the text input. The field keeps its value after a search.
func (m *InputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := globalKey(m.keys, msg, ctx, types.FocusInput); ok {
		return actions, true
	}
	if key.Matches(msg, m.keys.Submit) {
		return []types.Action{types.SearchAction{Trigger: domain.TriggerEnter}}, true
	}
	return nil, false
}
