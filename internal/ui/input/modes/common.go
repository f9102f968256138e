package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"searchgrip/internal/ui/input/types"
)

// globalKey handles keys that behave the same whichever widget has focus
func globalKey(b types.KeyMap, msg tea.KeyMsg, ctx types.Context, self types.Focus) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, b.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, b.NextFocus), key.Matches(msg, b.PrevFocus):
		// two widgets, so both directions land on the other one
		return []types.Action{types.ChangeFocusAction{Focus: self.Next()}}, true
	case key.Matches(msg, b.Pager):
		if !ctx.HasContent() {
			return nil, true
		}
		return []types.Action{types.OpenPagerAction{}}, true
	}
	return nil, false
}
