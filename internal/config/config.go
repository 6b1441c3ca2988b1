// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string
	Env         string
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Server configures the HTTP API surface.
type Server struct {
	Addr        string
	CORSOrigins []string `yaml:"cors_origins"`
}

// Stream tunes the synthetic tick generator and the observation window.
type Stream struct {
	Symbols    []string           `yaml:"symbols"`
	BasePrices map[string]float64 `yaml:"base_prices"`
	IntervalMs int                `yaml:"interval_ms"`
	WindowSize int                `yaml:"window_size"`
	MaxMovePct float64            `yaml:"max_move_pct"`
	VolumeMin  int64              `yaml:"volume_min"`
	VolumeMax  int64              `yaml:"volume_max"`
}

// Interval converts the configured cycle cadence into a duration.
func (s Stream) Interval() time.Duration {
	return time.Duration(s.IntervalMs) * time.Millisecond
}

// Alerts tunes anomaly detection cutoffs and alert-log retention.
type Alerts struct {
	ChangeThreshold float64 `yaml:"change_threshold"`
	HighThreshold   float64 `yaml:"high_threshold"`
	Retention       int     `yaml:"retention"`
	DebounceMs      int     `yaml:"debounce_ms"`
}

// Debounce converts the per-symbol alert suppression interval into a duration.
func (a Alerts) Debounce() time.Duration {
	return time.Duration(a.DebounceMs) * time.Millisecond
}

// Docs configures the knowledge-base store.
type Docs struct {
	Seed        bool   `yaml:"seed"`
	PersistPath string `yaml:"persist_path"`
}

// LLM configures the question-answering backend. The API key is read from the
// named environment variable, never from the file.
type LLM struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App    App    `yaml:"app"`
	Server Server `yaml:"server"`
	Stream Stream `yaml:"stream"`
	Alerts Alerts `yaml:"alerts"`
	Docs   Docs   `yaml:"docs"`
	LLM    LLM    `yaml:"llm"`
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
