// Package search runs the search and history request/render cycles against
// an injected view binding.
package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"searchgrip/internal/api"
	"searchgrip/internal/domain"
	"searchgrip/internal/eventbus"
)

// View is the binding between the cycles and whatever displays them.
// Render methods replace the whole list.
type View interface {
	SearchTerm() string
	RenderResults(results []string)
	RenderHistory(entries []string)
	ShowError(err error)
}

// HistoryView is the subset of View the history loader needs
type HistoryView interface {
	RenderHistory(entries []string)
	ShowError(err error)
}

// Controller reads the term, fetches results, renders them and then
// refreshes the history. It holds no per-search state, so concurrent
// searches are allowed and the last one to complete wins the render.
type Controller struct {
	fetcher api.Fetcher
	history *HistoryLoader
	view    View
	bus     eventbus.EventBus
	logger  *slog.Logger
	now     func() time.Time
}

// NewController wires a controller to its fetcher, view and history loader.
// bus may be nil.
func NewController(fetcher api.Fetcher, view View, history *HistoryLoader, bus eventbus.EventBus, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		fetcher: fetcher,
		history: history,
		view:    view,
		bus:     bus,
		logger:  logger,
		now:     time.Now,
	}
}

// Search runs one full cycle for the given trigger. On failure the view
// gets a notice, both lists stay as they were and the error is returned.
func (c *Controller) Search(ctx context.Context, trigger domain.Trigger) error {
	if trigger == domain.TriggerEnter {
		c.logger.Info("user starts search")
	}

	term := c.view.SearchTerm()
	record := domain.SearchRecord{
		ID:      uuid.NewString(),
		Term:    term,
		Trigger: trigger,
		At:      c.now(),
	}
	c.publish(eventbus.SearchRequestedEvent{Record: record})
	c.logger.Debug("search", "id", record.ID, "term", term, "trigger", trigger.String())

	results, err := c.fetcher.Search(ctx, term)
	if err != nil {
		c.logger.Warn("search failed", "id", record.ID, "term", term, "error", err)
		c.view.ShowError(err)
		c.publish(eventbus.SearchFailedEvent{ID: record.ID, Term: term, Err: err})
		return err
	}

	c.view.RenderResults(results)
	c.publish(eventbus.ResultsRenderedEvent{ID: record.ID, Term: term, Count: len(results)})

	return c.history.Load(ctx)
}

func (c *Controller) publish(e eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}
