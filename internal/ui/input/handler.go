package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchgrip/internal/ui/input/modes"
	"searchgrip/internal/ui/input/types"
)

// Handler routes keys to the focused widget's mode and owns the text input
type Handler struct {
	focus     types.Focus
	modes     map[types.Focus]types.ModeHandler
	keys      types.KeyMap
	textInput *textinput.Model
}

func New(keys types.KeyMap) *Handler {
	ti := textinput.New()
	ti.Placeholder = "type a word"
	ti.CharLimit = 0 // no limit; the term is sent as typed
	ti.Prompt = "> "
	ti.Focus()

	h := &Handler{
		focus:     types.FocusInput,
		keys:      keys,
		textInput: &ti,
		modes:     make(map[types.Focus]types.ModeHandler),
	}

	h.modes[types.FocusInput] = modes.NewInputMode(keys, h.textInput)
	h.modes[types.FocusButton] = modes.NewButtonMode(keys)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.focus]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		change, ok := action.(types.ChangeFocusAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		allActions = append(allActions, handler.Exit(ctx)...)
		h.focus = change.Focus
		handler = h.modes[h.focus]
		allActions = append(allActions, handler.Enter(ctx)...)
		allActions = append(allActions, action)
		if h.focus == types.FocusInput {
			cmd = textinput.Blink
		}
	}

	if !consumed && h.focus == types.FocusInput {
		before := h.textInput.Value()
		*h.textInput, cmd = h.textInput.Update(msg)
		if after := h.textInput.Value(); after != before {
			allActions = append(allActions, types.UpdateTextAction{Text: after})
		}
	}

	return allActions, cmd
}

// Update handles non-keyboard messages for the text input (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

func (h *Handler) Focus() types.Focus {
	return h.focus
}

func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// SetValue replaces the search field's text
func (h *Handler) SetValue(text string) {
	h.textInput.SetValue(text)
}
