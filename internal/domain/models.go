package domain

import "time"

// Trigger identifies the user action that started a search
type Trigger int

const (
	TriggerButton Trigger = iota // Search button activated
	TriggerEnter                 // Enter pressed in the search field
)

func (t Trigger) String() string {
	switch t {
	case TriggerButton:
		return "button"
	case TriggerEnter:
		return "enter"
	default:
		return "unknown"
	}
}

// SearchRecord is one issued search, as seen by the statistics recorder
type SearchRecord struct {
	ID      string
	Term    string
	Trigger Trigger
	At      time.Time
}
