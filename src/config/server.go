package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-yaml/yaml"
)

// ServerConfig is the runtime configuration of the engine server, loaded
// from a YAML file. An empty ListenAddr or LogLevel falls back to the
// package defaults in config.go.
type ServerConfig struct {
	ListenAddr   string   `yaml:"ListenAddr"`
	TrafficFiles []string `yaml:"TrafficFiles"`
	LogLevel     string   `yaml:"LogLevel"`
	LogSource    bool     `yaml:"LogSource"`
}

// LoadServerConfig reads and resolves a server configuration file. Globs in
// TrafficFiles are expanded relative to the config file's directory and the
// resulting list is sorted so scenario rotation order is stable.
func LoadServerConfig(path string) (*ServerConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &ServerConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	base := filepath.Dir(path)
	var files []string
	for _, pattern := range cfg.TrafficFiles {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(base, pattern)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad traffic glob %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	cfg.TrafficFiles = files
	return cfg, nil
}

// SlogLevel maps the configured level name onto a slog level.
func (c *ServerConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
