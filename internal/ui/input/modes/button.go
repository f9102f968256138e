package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"searchgrip/internal/domain"
	"searchgrip/internal/ui/input/types"
)

// ButtonMode handles keys while the Search button has focus
type ButtonMode struct {
	keys types.KeyMap
}

func NewButtonMode(keys types.KeyMap) *ButtonMode {
	return &ButtonMode{keys: keys}
}

func (m *ButtonMode) Name() string {
	return "button"
}

func (m *ButtonMode) Enter(ctx types.Context) []types.Action { return nil }

func (m *ButtonMode) Exit(ctx types.Context) []types.Action { return nil }

func (m *ButtonMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := globalKey(m.keys, msg, ctx, types.FocusButton); ok {
		return actions, true
	}
	switch {
	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Press):
		return []types.Action{types.SearchAction{Trigger: domain.TriggerButton}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	// swallow everything else so stray keys don't reach the text field
	return nil, true
}
