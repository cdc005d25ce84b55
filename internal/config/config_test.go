package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	flags := Flags()
	if err := flags.Parse(nil); err != nil {
		t.Fatalf("failed to parse empty flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "revise.db" {
		t.Errorf("DBPath = %q, want revise.db", cfg.DBPath)
	}
	if cfg.ReposDir != "repos" {
		t.Errorf("ReposDir = %q, want repos", cfg.ReposDir)
	}
	if cfg.DecksDir != "" {
		t.Errorf("DecksDir = %q, want empty", cfg.DecksDir)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "revise.yaml")
	content := "db_path: /tmp/cards.db\ndecks_dir: /tmp/decks\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	flags := Flags()
	if err := flags.Parse([]string{"--config", path}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/cards.db" {
		t.Errorf("DBPath = %q, want /tmp/cards.db", cfg.DBPath)
	}
	if cfg.DecksDir != "/tmp/decks" {
		t.Errorf("DecksDir = %q, want /tmp/decks", cfg.DecksDir)
	}
	if cfg.ReposDir != "repos" {
		t.Errorf("ReposDir = %q, want the default", cfg.ReposDir)
	}
}

func TestMissingExplicitConfigFile(t *testing.T) {
	flags := Flags()
	if err := flags.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	if _, err := Load(flags); err == nil {
		t.Error("expected an error for an explicitly named missing config file")
	}
}

func TestPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "revise.yaml")
	if err := os.WriteFile(path, []byte("db_path: /from/file.db\nrepos_dir: /from/file\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("REVISE_DB_PATH", "/from/env.db")

	flags := Flags()
	if err := flags.Parse([]string{"--config", path, "--db", "/from/flag.db"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/from/flag.db" {
		t.Errorf("DBPath = %q, flags should beat env and file", cfg.DBPath)
	}
	if cfg.ReposDir != "/from/file" {
		t.Errorf("ReposDir = %q, file value should survive when no env/flag overrides it", cfg.ReposDir)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "revise.yaml")
	if err := os.WriteFile(path, []byte("decks_dir: /from/file\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("REVISE_DECKS_DIR", "/from/env")

	flags := Flags()
	if err := flags.Parse([]string{"--config", path}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DecksDir != "/from/env" {
		t.Errorf("DecksDir = %q, env should beat the config file", cfg.DecksDir)
	}
}
