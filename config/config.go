package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	KRX      KRXConfig      `mapstructure:"krx"`
	Log      LogConfig      `mapstructure:"log"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Recorder RecorderConfig `mapstructure:"recorder"`
}

// Instrument is one tracked listing: a display name and the six-digit
// KRX short code used when querying the quote API.
type Instrument struct {
	Name string `mapstructure:"name"`
	Code string `mapstructure:"code"`
}

type MonitorConfig struct {
	Instruments []Instrument  `mapstructure:"instruments"`
	Interval    time.Duration `mapstructure:"interval"`     // poll cycle period
	MaxRetries  int           `mapstructure:"max_retries"`  // attempts per instrument per cycle
	RetryDelay  time.Duration `mapstructure:"retry_delay"`  // sleep between failed attempts
	HistorySize int           `mapstructure:"history_size"` // price points kept per instrument
}

type KRXConfig struct {
	REST RESTConfig `mapstructure:"rest"`
}

type RESTConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	ServiceKey string        `mapstructure:"service_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Options defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

type RecorderConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"` // flush cadence; defaults to the poll interval
}

// Default values for optional configuration fields.
const (
	DefaultInterval    = 5 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 2 * time.Second
	DefaultHistorySize = 100
	DefaultRESTTimeout = 10 * time.Second
	DefaultLogLevel    = "info"
	DefaultEnvironment = "dev"
)

// DefaultInstruments mirrors the stock set the monitor ships with.
func DefaultInstruments() []Instrument {
	return []Instrument{
		{Name: "삼성전자", Code: "005930"},
		{Name: "SK하이닉스", Code: "000660"},
		{Name: "NAVER", Code: "035420"},
	}
}

// Load loads application configuration using Viper.
// It reads from config.yaml when present and overrides with environment
// variables. A missing config file is not an error: defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Support environment variables with dot notation (e.g., KRX_REST_BASE_URL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Monitor.Instruments) == 0 {
		c.Monitor.Instruments = DefaultInstruments()
	}
	if c.Monitor.Interval == 0 {
		c.Monitor.Interval = DefaultInterval
	}
	if c.Monitor.MaxRetries == 0 {
		c.Monitor.MaxRetries = DefaultMaxRetries
	}
	if c.Monitor.RetryDelay == 0 {
		c.Monitor.RetryDelay = DefaultRetryDelay
	}
	if c.Monitor.HistorySize == 0 {
		c.Monitor.HistorySize = DefaultHistorySize
	}
	if c.KRX.REST.Timeout == 0 {
		c.KRX.REST.Timeout = DefaultRESTTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Environment == "" {
		c.Log.Environment = DefaultEnvironment
	}
	if c.Recorder.Interval == 0 {
		c.Recorder.Interval = c.Monitor.Interval
	}
}

// Validate checks that all required fields are set and values are valid.
// Configuration errors are the only errors that abort startup.
func (c *Config) Validate() error {
	if len(c.Monitor.Instruments) == 0 {
		return fmt.Errorf("monitor.instruments must list at least one instrument")
	}
	seen := make(map[string]bool, len(c.Monitor.Instruments))
	for i, inst := range c.Monitor.Instruments {
		if inst.Name == "" {
			return fmt.Errorf("monitor.instruments[%d].name is required", i)
		}
		if inst.Code == "" {
			return fmt.Errorf("monitor.instruments[%d].code is required", i)
		}
		if seen[inst.Name] {
			return fmt.Errorf("monitor.instruments: duplicate name %q", inst.Name)
		}
		seen[inst.Name] = true
	}
	if c.Monitor.Interval <= 0 {
		return fmt.Errorf("monitor.interval must be > 0, got %s", c.Monitor.Interval)
	}
	if c.Monitor.MaxRetries < 1 {
		return fmt.Errorf("monitor.max_retries must be >= 1, got %d", c.Monitor.MaxRetries)
	}
	if c.Monitor.RetryDelay < 0 {
		return fmt.Errorf("monitor.retry_delay must be >= 0, got %s", c.Monitor.RetryDelay)
	}
	if c.Monitor.HistorySize < 1 {
		return fmt.Errorf("monitor.history_size must be >= 1, got %d", c.Monitor.HistorySize)
	}
	if c.Recorder.Enabled && c.Recorder.Interval <= 0 {
		return fmt.Errorf("recorder.interval must be > 0 when the recorder is enabled")
	}
	return nil
}
