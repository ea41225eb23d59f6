package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"memegen/internal/editor"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memegen.yml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
canvas_width: 800
canvas_height: 450
background: "#000000"
history_depth: 30
confirmations: false
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CanvasWidth != 800 || cfg.CanvasHeight != 450 {
		t.Errorf("canvas = %dx%d, want 800x450", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.Background != "#000000" {
		t.Errorf("Background = %q", cfg.Background)
	}
	if cfg.HistoryDepth != 30 {
		t.Errorf("HistoryDepth = %d, want 30", cfg.HistoryDepth)
	}
	if cfg.Confirmations {
		t.Error("Confirmations = true, want false")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "canvas_width: 800\n")
	t.Setenv("MEMEGEN_CANVAS_WIDTH", "1024")
	t.Setenv("MEMEGEN_CONFIRMATIONS", "false")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CanvasWidth != 1024 {
		t.Errorf("CanvasWidth = %d, want 1024", cfg.CanvasWidth)
	}
	if cfg.Confirmations {
		t.Error("Confirmations = true, want false")
	}
}

func TestLoadConfigExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeConfig(t, "save_directory: ~/memes\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if want := filepath.Join(home, "memes"); cfg.SaveDirectory != want {
		t.Errorf("SaveDirectory = %q, want %q", cfg.SaveDirectory, want)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "history_depth: 5\n")); err == nil {
		t.Error("expected error for history_depth below the minimum")
	}
	if _, err := LoadConfig(writeConfig(t, "canvas_width: 0\n")); !errors.Is(err, editor.ErrInvalidSize) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalidSize", err)
	}
	if _, err := LoadConfig(writeConfig(t, "canvas_width: 1048576\n")); !errors.Is(err, editor.ErrInvalidSize) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalidSize for an oversized canvas", err)
	}
	if _, err := LoadConfig(writeConfig(t, "background: purple\n")); !errors.Is(err, editor.ErrInvalidColor) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalidColor", err)
	}
	if _, err := LoadConfig(writeConfig(t, "canvas_width: [1, 2\n")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestConfigSaveAndReload(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CanvasWidth = 720
	cfg.Confirmations = false
	path := filepath.Join(t.TempDir(), "saved.yml")

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("reloaded %+v, want %+v", got, cfg)
	}
}

func TestGetSavePath(t *testing.T) {
	cfg := DefaultConfig()
	if got, err := cfg.GetSavePath("meme.png"); err != nil || got != "meme.png" {
		t.Errorf("GetSavePath() = %q, %v without a save directory", got, err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	cfg.SaveDirectory = dir
	got, err := cfg.GetSavePath("meme.png")
	if err != nil {
		t.Fatalf("GetSavePath() error = %v", err)
	}
	if want := filepath.Join(dir, "meme.png"); got != want {
		t.Errorf("GetSavePath() = %q, want %q", got, want)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("save directory not created: %v", err)
	}
	abs := filepath.Join(t.TempDir(), "elsewhere.png")
	if got, err := cfg.GetSavePath(abs); err != nil || got != abs {
		t.Errorf("GetSavePath(abs) = %q, %v; want %q", got, err, abs)
	}
}

func TestGetSavePathReportsMkdirFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.SaveDirectory = filepath.Join(blocker, "memes")

	if _, err := cfg.GetSavePath("meme.png"); err == nil {
		t.Error("GetSavePath() error = nil under a regular file")
	}
}
