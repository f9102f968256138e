package search

import (
	"context"
	"log/slog"

	"searchgrip/internal/api"
	"searchgrip/internal/eventbus"
)

// HistoryLoader fetches the server's search history and renders it
type HistoryLoader struct {
	fetcher api.Fetcher
	view    HistoryView
	bus     eventbus.EventBus
	logger  *slog.Logger
}

// NewHistoryLoader creates a loader. bus may be nil.
func NewHistoryLoader(fetcher api.Fetcher, view HistoryView, bus eventbus.EventBus, logger *slog.Logger) *HistoryLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryLoader{fetcher: fetcher, view: view, bus: bus, logger: logger}
}

// Load replaces the rendered history with the server's current list.
// On failure the previous list is left in place.
func (h *HistoryLoader) Load(ctx context.Context) error {
	entries, err := h.fetcher.History(ctx)
	if err != nil {
		h.logger.Warn("history load failed", "error", err)
		h.view.ShowError(err)
		if h.bus != nil {
			h.bus.Publish(eventbus.HistoryFailedEvent{Err: err})
		}
		return err
	}

	h.view.RenderHistory(entries)
	if h.bus != nil {
		h.bus.Publish(eventbus.HistoryRenderedEvent{Count: len(entries)})
	}
	return nil
}
