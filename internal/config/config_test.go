package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Analyze.PageSize != nil || cfg.Store.Driver != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[analyze]
page-size = 100
sort = "word"

[deck]
min = 2
sentences = 3

[definition]
provider = "openai"

[store]
driver = "postgres"
dsn = "postgres://localhost/lexideck"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Analyze.PageSize == nil || *cfg.Analyze.PageSize != 100 {
		t.Fatalf("unexpected page size: %v", cfg.Analyze.PageSize)
	}
	if cfg.Analyze.Sort == nil || *cfg.Analyze.Sort != "word" {
		t.Fatalf("unexpected sort: %v", cfg.Analyze.Sort)
	}
	if cfg.Analyze.Order != nil {
		t.Fatalf("expected order to stay unset")
	}
	if cfg.Deck.Min == nil || *cfg.Deck.Min != 2 || cfg.Deck.Sentences == nil || *cfg.Deck.Sentences != 3 {
		t.Fatalf("unexpected deck config: %+v", cfg.Deck)
	}
	if cfg.Definition.Provider == nil || *cfg.Definition.Provider != "openai" {
		t.Fatalf("unexpected provider: %v", cfg.Definition.Provider)
	}
	if cfg.Store.DSN == nil || *cfg.Store.DSN != "postgres://localhost/lexideck" {
		t.Fatalf("unexpected dsn: %v", cfg.Store.DSN)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[deck]\nsise = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "deck.sise") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "lexideck", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "lexideck", "lexideck.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, ".env")); err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("LEXIDECK_TEST_KEY=from-file\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("LEXIDECK_TEST_KEY", "")
	os.Unsetenv("LEXIDECK_TEST_KEY")
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv("LEXIDECK_TEST_KEY"); got != "from-file" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}
