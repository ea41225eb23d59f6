package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"memegen/internal/editor"
)

const envPrefix = "MEMEGEN_"

type Config struct {
	SaveDirectory string `koanf:"save_directory" yaml:"save_directory"`
	CanvasWidth   int    `koanf:"canvas_width" yaml:"canvas_width"`
	CanvasHeight  int    `koanf:"canvas_height" yaml:"canvas_height"`
	Background    string `koanf:"background" yaml:"background"`
	HistoryDepth  int    `koanf:"history_depth" yaml:"history_depth"`
	Confirmations bool   `koanf:"confirmations" yaml:"confirmations"`
	DebugLog      string `koanf:"debug_log" yaml:"debug_log,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		CanvasWidth:   editor.DefaultCanvasWidth,
		CanvasHeight:  editor.DefaultCanvasHeight,
		Background:    editor.DefaultBackground,
		HistoryDepth:  editor.DefaultHistoryDepth,
		Confirmations: true,
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".memegen.yml"
	}
	return filepath.Join(homeDir, ".memegen.yml")
}

// LoadConfig layers defaults, the YAML file at path (if it exists) and
// MEMEGEN_* environment variables, in that order.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.SaveDirectory = expandHome(cfg.SaveDirectory)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := editor.ValidateSize(c.CanvasWidth, c.CanvasHeight); err != nil {
		return fmt.Errorf("canvas size: %w", err)
	}
	if err := editor.ValidateColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if c.HistoryDepth < editor.MinHistoryDepth {
		return fmt.Errorf("history_depth must be at least %d, got %d", editor.MinHistoryDepth, c.HistoryDepth)
	}
	return nil
}

func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func (c *Config) SessionOptions() editor.Options {
	return editor.Options{
		Width:        c.CanvasWidth,
		Height:       c.CanvasHeight,
		HistoryDepth: c.HistoryDepth,
		Background:   c.Background,
	}
}

func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
