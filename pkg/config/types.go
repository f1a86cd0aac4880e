// Package config provides configuration loading and validation for logview.
package config

import (
	"time"

	"github.com/ccollicutt/logview/pkg/aggregator"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Directory is the log directory used when a command is given none.
	Directory string `yaml:"directory,omitempty"`

	// FileType selects which files are read: txt, json, or both.
	FileType string `yaml:"file_type"`

	// Exclude lists doublestar patterns matched against file names.
	Exclude []string `yaml:"exclude,omitempty"`

	// PageSize is the number of records per page.
	PageSize int `yaml:"page_size"`

	// PollInterval is the reload period of the watch command.
	PollInterval time.Duration `yaml:"poll_interval"`

	// Concurrency bounds the number of files read at once.
	Concurrency int `yaml:"concurrency"`

	// StateFile is where the last opened directory is remembered.
	StateFile string `yaml:"state_file"`

	// fileType is the parsed FileType (populated during validation).
	fileType aggregator.FileType
}

// ParsedFileType returns the validated file type.
func (c *Config) ParsedFileType() aggregator.FileType {
	if c.fileType == "" {
		return aggregator.FileTypeBoth
	}
	return c.fileType
}

// SetFileType overrides the file type, as a command-line flag does.
func (c *Config) SetFileType(s string) error {
	ft, err := aggregator.ParseFileType(s)
	if err != nil {
		return err
	}
	c.FileType = string(ft)
	c.fileType = ft
	return nil
}

// AggregatorOptions returns the aggregator options this configuration implies.
func (c *Config) AggregatorOptions() []aggregator.Option {
	return []aggregator.Option{
		aggregator.WithFileType(c.ParsedFileType()),
		aggregator.WithExclude(c.Exclude),
		aggregator.WithConcurrency(c.Concurrency),
	}
}
