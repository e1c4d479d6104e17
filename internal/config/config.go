package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/podium/pkg/render"
)

// Constants for default values.
const (
	DefaultBackendURL = "http://localhost:8080"
	DefaultRefresh    = 5 * time.Second
	DefaultDebounce   = 300 * time.Millisecond
	DefaultTimeout    = 10 * time.Second
	DefaultTheme      = "neon"
	DefaultBrand      = "MATIKS"

	// FileName is the config file looked up in the working directory and XDG config dir.
	FileName = ".podium.yaml"
)

// AppConfig represents the contents of .podium.yaml.
// Pointer durations distinguish "unset" from an explicit zero.
type AppConfig struct {
	BackendURL  string         `yaml:"backend_url"`
	Refresh     *time.Duration `yaml:"refresh"`
	Debounce    *time.Duration `yaml:"debounce"`
	Timeout     *time.Duration `yaml:"timeout"`
	Theme       string         `yaml:"theme"`
	Brand       string         `yaml:"brand"`
	NoColor     bool           `yaml:"no_color"`
	Debug       bool           `yaml:"debug"`
	LogFile     string         `yaml:"log_file"`
	MetricsAddr string         `yaml:"metrics_addr"`
	Palette     render.Palette `yaml:"palette"`
	Avatars     map[int]string `yaml:"avatars"`
}

// LoadConfig reads and decodes the YAML file at path.
// A missing file yields an empty config and no error.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if path == "" {
		return cfg, nil
	}

	// #nosec G304 -- path is user-supplied or from FindConfigPath
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigPath looks for .podium.yaml in the current dir, then the user config dir.
func FindConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	xdgPath := filepath.Join(configDir, "podium", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone, and a missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
