package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"searchgrip/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Server  ServerSettings `toml:"server"`
	Client  ClientSettings `toml:"client"`
	Log     LogSettings    `toml:"log"`
	Trace   TraceSettings  `toml:"trace"`
	UI      UISettings     `toml:"ui"`
}

// ServerSettings locates the autocomplete server
type ServerSettings struct {
	BaseURL     string   `toml:"base_url"`
	SearchPath  string   `toml:"search_path"`
	HistoryPath string   `toml:"history_path"`
	Timeout     Duration `toml:"timeout"`
}

// ClientSettings tunes the outbound HTTP client
type ClientSettings struct {
	RatePerSecond      float64  `toml:"rate_per_second"` // 0 disables rate limiting
	Burst              int      `toml:"burst"`
	BreakerEnabled     bool     `toml:"breaker_enabled"`
	BreakerMaxFailures uint32   `toml:"breaker_max_failures"`
	BreakerTimeout     Duration `toml:"breaker_timeout"`
}

// LogSettings configures the slog logger
type LogSettings struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
	Output string `toml:"output"` // stderr, stdout or a file path
}

// TraceSettings configures OpenTelemetry tracing
type TraceSettings struct {
	Enabled  bool   `toml:"enabled"`
	Exporter string `toml:"exporter"` // noop, stdout or file
	Output   string `toml:"output"`   // file path for the file exporter
}

// UISettings represents UI-related configuration
type UISettings struct {
	LoadHistoryOnStart bool   `toml:"load_history_on_start"`
	StatsDir           string `toml:"stats_dir"` // empty disables CSV export
}

// Duration is a time.Duration written as a Go duration string ("5s")
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted at the user config dir
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// An empty path selects DefaultPath().
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/searchgrip/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "searchgrip", "config.toml")
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration from file, returning defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:    cs.filePath,
			BaseURL: cfg.Server.BaseURL,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from
// the file keep their default values. The result is not validated; callers
// apply their overrides first and then call Validate.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the settings the client cannot run without
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("server.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if !strings.HasPrefix(c.Server.SearchPath, "/") {
		return fmt.Errorf("server.search_path must start with /")
	}
	if !strings.HasPrefix(c.Server.HistoryPath, "/") {
		return fmt.Errorf("server.history_path must start with /")
	}
	if c.Client.RatePerSecond < 0 {
		return fmt.Errorf("client.rate_per_second must not be negative")
	}
	return nil
}

// DefaultConfig returns the default configuration. The server defaults match
// the autocomplete service's own defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerSettings{
			BaseURL:     "http://127.0.0.1:8080",
			SearchPath:  "/search",
			HistoryPath: "/search_history",
			Timeout:     Duration(10 * time.Second),
		},
		Client: ClientSettings{
			RatePerSecond:      0,
			Burst:              1,
			BreakerEnabled:     true,
			BreakerMaxFailures: 5,
			BreakerTimeout:     Duration(30 * time.Second),
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Trace: TraceSettings{
			Enabled:  false,
			Exporter: "noop",
		},
		UI: UISettings{
			LoadHistoryOnStart: false, // history appears after the first search
		},
	}
}
