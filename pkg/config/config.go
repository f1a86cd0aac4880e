package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/logview/pkg/aggregator"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or returns the validated defaults with
// environment overrides when path is empty.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and expands paths.
func Validate(cfg *Config) error {
	ft, err := aggregator.ParseFileType(cfg.FileType)
	if err != nil {
		return fmt.Errorf("file_type: %w", err)
	}
	cfg.fileType = ft

	for i, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("exclude[%d]: invalid pattern %q", i, pattern)
		}
	}

	if cfg.PageSize < 1 {
		return errors.New("page_size: must be at least 1")
	}

	if cfg.PollInterval <= 0 {
		return errors.New("poll_interval: must be positive")
	}

	if cfg.Concurrency < 1 {
		return errors.New("concurrency: must be at least 1")
	}

	if cfg.Directory != "" {
		dir, err := expandPath(cfg.Directory)
		if err != nil {
			return fmt.Errorf("directory: %w", err)
		}
		cfg.Directory = dir
	}

	if cfg.StateFile == "" {
		return errors.New("state_file: path is required")
	}
	stateFile, err := expandPath(cfg.StateFile)
	if err != nil {
		return fmt.Errorf("state_file: %w", err)
	}
	cfg.StateFile = stateFile

	return nil
}

// expandPath expands environment variables and a leading ~ in a path.
func expandPath(p string) (string, error) {
	p = expandEnvVar(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p, nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" || !strings.Contains(s, "$") {
		return s
	}
	return os.ExpandEnv(s)
}
