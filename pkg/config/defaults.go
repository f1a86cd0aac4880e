package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultFileType     = "both"
	DefaultPageSize     = 5
	DefaultPollInterval = 30 * time.Second
	DefaultConcurrency  = 4
	DefaultStateFile    = "~/.logview/state.yaml"
)

// Environment variable names.
const (
	EnvDirectory = "LOGVIEW_DIRECTORY"
	EnvFileType  = "LOGVIEW_FILE_TYPE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		FileType:     DefaultFileType,
		Exclude:      []string{},
		PageSize:     DefaultPageSize,
		PollInterval: DefaultPollInterval,
		Concurrency:  DefaultConcurrency,
		StateFile:    DefaultStateFile,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if dir := os.Getenv(EnvDirectory); dir != "" {
		c.Directory = dir
	}
	if ft := os.Getenv(EnvFileType); ft != "" {
		c.FileType = ft
	}
}
