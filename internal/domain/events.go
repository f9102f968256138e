package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchRequested EventType = "SearchRequested"
	EventResultsRendered EventType = "ResultsRendered"
	EventSearchFailed    EventType = "SearchFailed"
	EventHistoryRendered EventType = "HistoryRendered"
	EventHistoryFailed   EventType = "HistoryFailed"
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchRequestedEvent is emitted once per trigger, before the request is sent
type SearchRequestedEvent struct {
	Record SearchRecord
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// ResultsRenderedEvent is emitted after the results list was replaced
type ResultsRenderedEvent struct {
	ID    string
	Term  string
	Count int
}

func (e ResultsRenderedEvent) Type() EventType { return EventResultsRendered }

// SearchFailedEvent is emitted when the search request fails
type SearchFailedEvent struct {
	ID   string
	Term string
	Err  error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// HistoryRenderedEvent is emitted after the history list was replaced
type HistoryRenderedEvent struct {
	Count int
}

func (e HistoryRenderedEvent) Type() EventType { return EventHistoryRendered }

// HistoryFailedEvent is emitted when the history request fails
type HistoryFailedEvent struct {
	Err error
}

func (e HistoryFailedEvent) Type() EventType { return EventHistoryFailed }

// ErrorEvent is emitted when an error occurs outside a fetch
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
