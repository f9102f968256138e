// Package stats counts searches per term and per day and writes the counts
// out as CSV.
package stats

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"searchgrip/internal/eventbus"
)

// OverallFile is the name of the all-days CSV file
const OverallFile = "up_to_date search results.csv"

// dayFileFormat is the per-day CSV file name, keyed by YYYY-MM-DD
const dayFileFormat = "%s search results.csv"

// Count is one CSV row
type Count struct {
	Term  string
	Count int
}

// counter keeps counts in first-seen order
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(term string) {
	if _, ok := c.counts[term]; !ok {
		c.order = append(c.order, term)
	}
	c.counts[term]++
}

func (c *counter) rows() []Count {
	rows := make([]Count, 0, len(c.order))
	for _, term := range c.order {
		rows = append(rows, Count{Term: term, Count: c.counts[term]})
	}
	return rows
}

// Recorder is an in-memory store of search counts
type Recorder struct {
	mu      sync.RWMutex
	days    map[string]*counter
	overall *counter
	logger  *slog.Logger
	unsub   func()
}

// NewRecorder creates an empty recorder
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		days:    make(map[string]*counter),
		overall: newCounter(),
		logger:  logger,
	}
}

// Attach subscribes the recorder to SearchRequested events on bus
func (r *Recorder) Attach(bus eventbus.EventBus) {
	r.unsub = bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchRequestedEvent); ok {
			r.Add(ev.Record.At.Format("2006-01-02"), ev.Record.Term)
		}
	})
}

// Detach stops listening for events
func (r *Recorder) Detach() {
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
}

// Add counts one search for term on day (YYYY-MM-DD)
func (r *Recorder) Add(day, term string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.days[day]
	if !ok {
		c = newCounter()
		r.days[day] = c
	}
	c.add(term)
	r.overall.add(term)
}

// Days returns the recorded days in ascending order
func (r *Recorder) Days() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	days := make([]string, 0, len(r.days))
	for d := range r.days {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// Day returns the counts for one day, nil when nothing was recorded
func (r *Recorder) Day(day string) []Count {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.days[day]
	if !ok {
		return nil
	}
	return c.rows()
}

// Overall returns the counts across all days
func (r *Recorder) Overall() []Count {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.overall.rows()
}

// Total is the number of searches recorded
func (r *Recorder) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, v := range r.overall.counts {
		n += v
	}
	return n
}

// WriteCSV writes one file per day plus the overall file into dir,
// creating it if needed. Nothing is written when no search was recorded.
func (r *Recorder) WriteCSV(dir string, perDay bool) error {
	if r.Total() == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create stats dir: %w", err)
	}

	if perDay {
		for _, day := range r.Days() {
			path := filepath.Join(dir, fmt.Sprintf(dayFileFormat, day))
			if err := writeRows(path, r.Day(day)); err != nil {
				return err
			}
		}
	}

	path := filepath.Join(dir, OverallFile)
	if err := writeRows(path, r.Overall()); err != nil {
		return err
	}
	r.logger.Info("search stats written", "dir", dir, "searches", r.Total())
	return nil
}

func writeRows(path string, rows []Count) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write([]string{row.Term, strconv.Itoa(row.Count)}); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
