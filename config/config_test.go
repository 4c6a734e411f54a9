package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Instruments: DefaultInstruments(),
			Interval:    5 * time.Second,
			MaxRetries:  3,
			RetryDelay:  2 * time.Second,
			HistorySize: 100,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no instruments",
			mutate:  func(c *Config) { c.Monitor.Instruments = nil },
			wantErr: "at least one instrument",
		},
		{
			name:    "missing name",
			mutate:  func(c *Config) { c.Monitor.Instruments[0].Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "missing code",
			mutate:  func(c *Config) { c.Monitor.Instruments[1].Code = "" },
			wantErr: "code is required",
		},
		{
			name: "duplicate name",
			mutate: func(c *Config) {
				c.Monitor.Instruments[1].Name = c.Monitor.Instruments[0].Name
			},
			wantErr: "duplicate name",
		},
		{
			name:    "zero interval",
			mutate:  func(c *Config) { c.Monitor.Interval = 0 },
			wantErr: "interval must be > 0",
		},
		{
			name:    "zero retries",
			mutate:  func(c *Config) { c.Monitor.MaxRetries = 0 },
			wantErr: "max_retries must be >= 1",
		},
		{
			name:    "negative retry delay",
			mutate:  func(c *Config) { c.Monitor.RetryDelay = -time.Second },
			wantErr: "retry_delay must be >= 0",
		},
		{
			name:    "zero history size",
			mutate:  func(c *Config) { c.Monitor.HistorySize = 0 },
			wantErr: "history_size must be >= 1",
		},
		{
			name: "recorder enabled without interval",
			mutate: func(c *Config) {
				c.Recorder.Enabled = true
				c.Recorder.Interval = 0
			},
			wantErr: "recorder.interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()

	if cfg.Monitor.Interval != DefaultInterval {
		t.Errorf("Interval = %s, want %s", cfg.Monitor.Interval, DefaultInterval)
	}
	if cfg.Monitor.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", cfg.Monitor.MaxRetries, DefaultMaxRetries)
	}
	if cfg.Monitor.RetryDelay != DefaultRetryDelay {
		t.Errorf("RetryDelay = %s, want %s", cfg.Monitor.RetryDelay, DefaultRetryDelay)
	}
	if cfg.Monitor.HistorySize != DefaultHistorySize {
		t.Errorf("HistorySize = %d, want %d", cfg.Monitor.HistorySize, DefaultHistorySize)
	}
	if len(cfg.Monitor.Instruments) != 3 {
		t.Errorf("Instruments len = %d, want 3 defaults", len(cfg.Monitor.Instruments))
	}
	if cfg.Recorder.Interval != cfg.Monitor.Interval {
		t.Errorf("Recorder.Interval = %s, want poll interval %s", cfg.Recorder.Interval, cfg.Monitor.Interval)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}
