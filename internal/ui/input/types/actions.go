package types

import "searchgrip/internal/domain"

// SearchAction starts one search cycle
type SearchAction struct {
	Trigger domain.Trigger
}

func (a SearchAction) Type() string { return "search" }

// ChangeFocusAction moves focus to another widget
type ChangeFocusAction struct {
	Focus Focus
}

func (a ChangeFocusAction) Type() string { return "change_focus" }

// UpdateTextAction reports the text input's new value
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// OpenPagerAction shows results and history in the pager
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

// ToggleHelpAction switches between short and full help
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// QuitAction exits the program
type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
