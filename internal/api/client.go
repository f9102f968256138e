// Package api talks to the autocomplete server's two JSON endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"searchgrip/internal/config"
	"searchgrip/internal/domain"
	"searchgrip/internal/tracer"
)

const (
	opSearch  = "search"
	opHistory = "history"
)

// Fetcher is what the search controller needs from the server
type Fetcher interface {
	Search(ctx context.Context, term string) ([]string, error)
	History(ctx context.Context) ([]string, error)
}

// Client is the HTTP implementation of Fetcher. It is safe for concurrent use.
type Client struct {
	base        *url.URL
	searchPath  string
	historyPath string
	http        *http.Client
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[[]string]
	logger      *slog.Logger
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a client from the server and client settings
func New(server config.ServerSettings, settings config.ClientSettings, logger *slog.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(server.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", server.BaseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		base:        base,
		searchPath:  server.SearchPath,
		historyPath: server.HistoryPath,
		http:        &http.Client{Timeout: server.Timeout.Std()},
		logger:      logger,
	}

	if settings.RatePerSecond > 0 {
		burst := settings.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(settings.RatePerSecond), burst)
	}

	if settings.BreakerEnabled {
		c.breaker = newBreaker(base.Host, settings, logger)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Default circuit breaker settings.
const (
	defaultBreakerMaxFailures uint32        = 5
	defaultBreakerTimeout     time.Duration = 30 * time.Second
)

func newBreaker(name string, settings config.ClientSettings, logger *slog.Logger) *gobreaker.CircuitBreaker[[]string] {
	maxFailures := settings.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = defaultBreakerMaxFailures
	}
	timeout := settings.BreakerTimeout.Std()
	if timeout == 0 {
		timeout = defaultBreakerTimeout
	}

	return gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:        "search:" + name,
		MaxRequests: 1, // one probe while half-open
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		// a reachable server that sends a bad body or a 4xx is not an outage
		IsSuccessful: func(err error) bool {
			var fe *domain.FetchError
			if err == nil || !errors.As(err, &fe) {
				return err == nil
			}
			switch fe.Kind {
			case domain.KindParse:
				return true
			case domain.KindStatus:
				return fe.StatusCode < 500
			}
			return false
		},
	})
}

// BreakerState reports the circuit state; StateClosed when the breaker is disabled
func (c *Client) BreakerState() gobreaker.State {
	if c.breaker == nil {
		return gobreaker.StateClosed
	}
	return c.breaker.State()
}

type searchResponse struct {
	Results *[]string `json:"results"`
}

type historyResponse struct {
	Result *[]string `json:"result"`
}

// Search issues GET <search_path>?term=<term>. The term is sent as given,
// including the empty string.
func (c *Client) Search(ctx context.Context, term string) ([]string, error) {
	ctx, span := tracer.StartSpan(ctx, "api.search")
	defer span.End()
	span.SetAttributes(tracer.StringAttr("search.term", term))

	u := c.endpoint(c.searchPath, url.Values{"term": {term}})
	results, err := c.fetch(ctx, opSearch, u, func(r io.Reader) ([]string, error) {
		var body searchResponse
		if err := json.NewDecoder(r).Decode(&body); err != nil {
			return nil, err
		}
		if body.Results == nil {
			return nil, errors.New(`missing "results" field`)
		}
		return *body.Results, nil
	})
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(tracer.IntAttr("search.results", len(results)))
	tracer.SetOK(span)
	return results, nil
}

// History issues GET <history_path>
func (c *Client) History(ctx context.Context) ([]string, error) {
	ctx, span := tracer.StartSpan(ctx, "api.history")
	defer span.End()

	u := c.endpoint(c.historyPath, nil)
	entries, err := c.fetch(ctx, opHistory, u, func(r io.Reader) ([]string, error) {
		var body historyResponse
		if err := json.NewDecoder(r).Decode(&body); err != nil {
			return nil, err
		}
		if body.Result == nil {
			return nil, errors.New(`missing "result" field`)
		}
		return *body.Result, nil
	})
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(tracer.IntAttr("history.entries", len(entries)))
	tracer.SetOK(span)
	return entries, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimSuffix(c.base.Path, "/") + path
	u.RawPath = ""
	u.RawQuery = query.Encode()
	return u.String()
}

// fetch runs one GET through the limiter and the breaker. It never retries.
func (c *Client) fetch(ctx context.Context, op, target string, decode func(io.Reader) ([]string, error)) ([]string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, domain.NewNetworkError(op, fmt.Errorf("rate limit wait: %w", err))
		}
	}

	do := func() ([]string, error) { return c.get(ctx, op, target, decode) }
	if c.breaker == nil {
		return do()
	}

	list, err := c.breaker.Execute(do)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, domain.NewNetworkError(op, fmt.Errorf("circuit open: %w", err))
	}
	return list, err
}

func (c *Client) get(ctx context.Context, op, target string, decode func(io.Reader) ([]string, error)) ([]string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, domain.NewNetworkError(op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "url", target, "error", err)
		return nil, domain.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("response",
		"op", op,
		"url", target,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, domain.NewStatusError(op, resp.StatusCode)
	}

	list, err := decode(resp.Body)
	if err != nil {
		return nil, domain.NewParseError(op, err)
	}
	return list, nil
}

var _ Fetcher = (*Client)(nil)
