package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.GenAI.EmbeddingModel != "gemini-embedding-001" {
		t.Errorf("unexpected embedding model: %s", cfg.GenAI.EmbeddingModel)
	}
	if cfg.Pipeline.BatchSize != 50 {
		t.Errorf("unexpected batch size: %d", cfg.Pipeline.BatchSize)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("unexpected port: %d", cfg.Database.Port)
	}
	if cfg.Pipeline.IconDelayDuration() != time.Second {
		t.Errorf("unexpected icon delay: %v", cfg.Pipeline.IconDelayDuration())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ICONDEX_LIBRARY", "lucide")
	t.Setenv("ICONDEX_BATCH_SIZE", "10")
	t.Setenv("ICONDEX_DB_HOST", "db.example.com")
	t.Setenv("ICONDEX_DB_PORT", "6543")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GenAI.APIKey != "test-key" {
		t.Errorf("API key override not applied: %q", cfg.GenAI.APIKey)
	}
	if cfg.Library != "lucide" {
		t.Errorf("library override not applied: %q", cfg.Library)
	}
	if cfg.Pipeline.BatchSize != 10 {
		t.Errorf("batch size override not applied: %d", cfg.Pipeline.BatchSize)
	}
	if cfg.Database.Host != "db.example.com" || cfg.Database.Port != 6543 {
		t.Errorf("db overrides not applied: %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icondex.yaml")
	body := `
library: heroicons
pipeline:
  batch_size: 25
  icon_delay: 250ms
database:
  host: localhost
  name: icons
  user: icondex
  password: secret
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Library != "heroicons" {
		t.Errorf("library not loaded: %q", cfg.Library)
	}
	if cfg.Pipeline.BatchSize != 25 {
		t.Errorf("batch size not loaded: %d", cfg.Pipeline.BatchSize)
	}
	if cfg.Pipeline.IconDelayDuration() != 250*time.Millisecond {
		t.Errorf("icon delay not loaded: %v", cfg.Pipeline.IconDelayDuration())
	}
	// Defaults survive a partial file.
	if cfg.GenAI.Model != "gemini-2.0-flash" {
		t.Errorf("default model lost: %q", cfg.GenAI.Model)
	}
	if err := cfg.ValidateLoad(); err != nil {
		t.Errorf("expected valid load config, got: %v", err)
	}
}

func TestValidateLoadNamesEveryMissingKey(t *testing.T) {
	cfg := Default()

	err := cfg.ValidateLoad()
	if err == nil {
		t.Fatal("expected error for empty database config")
	}
	for _, key := range []string{"ICONDEX_DB_HOST", "ICONDEX_DB_NAME", "ICONDEX_DB_USER", "ICONDEX_DB_PASSWORD"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error should name %s: %v", key, err)
		}
	}
}

func TestValidateGenerate(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidateGenerate(); err == nil {
		t.Fatal("expected error with no API key or library")
	}

	cfg.GenAI.APIKey = "k"
	cfg.Library = "tabler"
	if err := cfg.ValidateGenerate(); err != nil {
		t.Errorf("expected valid generate config, got: %v", err)
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: 5432, Name: "n", User: "u", Password: "p"}
	dsn := db.DSN()
	want := "host=h port=5432 user=u password=p dbname=n sslmode=require"
	if dsn != want {
		t.Errorf("DSN mismatch:\n got %s\nwant %s", dsn, want)
	}
}
