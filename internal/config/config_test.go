package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.Name != "finstream-test" {
		t.Fatalf("unexpected App.Name: %s", cfg.App.Name)
	}
	if cfg.App.LogLevel != "debug" {
		t.Fatalf("unexpected App.LogLevel: %s", cfg.App.LogLevel)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected Server.Addr: %s", cfg.Server.Addr)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %+v", cfg.Server.CORSOrigins)
	}
	if len(cfg.Stream.Symbols) != 2 || cfg.Stream.Symbols[0] != "AAPL" {
		t.Fatalf("unexpected symbols: %+v", cfg.Stream.Symbols)
	}
	if cfg.Stream.BasePrices["TSLA"] != 250 {
		t.Fatalf("unexpected TSLA base price: %.2f", cfg.Stream.BasePrices["TSLA"])
	}
	if cfg.Stream.Interval() != 50*time.Millisecond {
		t.Fatalf("unexpected interval: %s", cfg.Stream.Interval())
	}
	if cfg.Stream.WindowSize != 25 {
		t.Fatalf("unexpected window size: %d", cfg.Stream.WindowSize)
	}
	if cfg.Stream.MaxMovePct != 0.01 {
		t.Fatalf("unexpected max move: %.3f", cfg.Stream.MaxMovePct)
	}
	if cfg.Stream.VolumeMin != 100 || cfg.Stream.VolumeMax != 200 {
		t.Fatalf("unexpected volume range: %d-%d", cfg.Stream.VolumeMin, cfg.Stream.VolumeMax)
	}
	if cfg.Alerts.ChangeThreshold != 1.5 || cfg.Alerts.HighThreshold != 1.8 {
		t.Fatalf("unexpected alert thresholds: %+v", cfg.Alerts)
	}
	if cfg.Alerts.Retention != 10 {
		t.Fatalf("unexpected alert retention: %d", cfg.Alerts.Retention)
	}
	if cfg.Alerts.Debounce() != 250*time.Millisecond {
		t.Fatalf("unexpected debounce: %s", cfg.Alerts.Debounce())
	}
	if cfg.Docs.Seed {
		t.Fatalf("expected seeding disabled in test config")
	}
	if cfg.Docs.PersistPath != "documents.jsonl" {
		t.Fatalf("unexpected persist path: %s", cfg.Docs.PersistPath)
	}
	if cfg.LLM.Model != "test-model" || cfg.LLM.APIKeyEnv != "TEST_LLM_KEY" {
		t.Fatalf("unexpected llm config: %+v", cfg.LLM)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{}
	cfg.App.Name = "roundtrip"
	cfg.Stream.WindowSize = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.App.Name != "roundtrip" || loaded.Stream.WindowSize != 7 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestSaveNilConfig(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "config.yaml"), nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
