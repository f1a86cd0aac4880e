package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logview/pkg/config"
	"github.com/ccollicutt/logview/pkg/source"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a logview configuration file without loading any logs.

Checks:
  - YAML syntax
  - File type and exclude pattern validity
  - Page size, poll interval, and concurrency ranges
  - Log directory accessibility (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	// Load and validate config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Report what we found
	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  File type:     %s\n", cfg.ParsedFileType())
	fmt.Fprintf(w, "  Page size:     %d\n", cfg.PageSize)
	fmt.Fprintf(w, "  Poll interval: %s\n", cfg.PollInterval)
	fmt.Fprintf(w, "  Concurrency:   %d\n", cfg.Concurrency)
	fmt.Fprintf(w, "  State file:    %s\n", cfg.StateFile)

	if len(cfg.Exclude) > 0 {
		fmt.Fprintf(w, "\nExclude patterns:\n")
		for _, p := range cfg.Exclude {
			fmt.Fprintf(w, "  - %s\n", p)
		}
	}

	// Check the directory exists (warnings only)
	if cfg.Directory == "" {
		fmt.Fprintf(w, "\nNo directory configured; pass one to each command or use 'logview open'\n")
		return nil
	}

	dir, err := source.NewLocal(cfg.Directory)
	if err != nil {
		fmt.Fprintf(w, "\nWarning: Invalid directory %q: %v\n", cfg.Directory, err)
		return nil
	}
	if err := source.VerifyAccess(ctx, dir); err != nil {
		fmt.Fprintf(w, "\nWarning: Directory %s is not readable\n", dir.Path())
		return nil
	}
	fmt.Fprintf(w, "\nDirectory: %s (readable)\n", dir.Path())

	return nil
}
