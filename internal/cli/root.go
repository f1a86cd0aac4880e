// Package cli provides the command-line interface for logview.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logview/internal/cli/commands"
	"github.com/ccollicutt/logview/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(os.Args[1:])
}

func run(args []string) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)

	// Check if the first argument might be a plugin command
	if len(args) > 0 {
		potentialCommand := args[0]
		// Skip flags (start with -)
		if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
			if !isBuiltinCommand(rootCmd, potentialCommand) {
				if pluginPath, err := plugins.FindPlugin(potentialCommand); err == nil {
					return plugins.Execute(context.Background(), pluginPath, args[1:], os.Stdin, os.Stdout, os.Stderr)
				}
				_, _ = fmt.Fprintln(os.Stderr, plugins.FormatNotFoundError(potentialCommand))
				return 2
			}
		}
	}

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	// Also check for special commands like help and completion
	return name == "help" || name == "completion" ||
		name == cobra.ShellCompRequestCmd || name == cobra.ShellCompNoDescRequestCmd
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logview",
		Short: "Browse, filter, and export log files from a directory",
		Long: `logview reads every .txt and .json log file in a directory and lets you
filter, page through, summarize, chart, and export the records.

Text files hold "[timestamp] [level] message" entries; a message runs until
the next line that starts with "[". JSON files hold one object per line with
timestamp, level, and message fields.

The directory can be passed to each command, set in the config file, or
remembered with 'logview open <dir>'.

PLUGINS:
  Unknown commands run a binary named logview-<command> if one is found next
  to the logview binary, in ~/.logview/plugins/, or in PATH.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&commands.Global.ConfigPath, "config", "c", "", "Config file (YAML)")
	flags.StringVar(&commands.Global.LogLevel, "log-level", "warn", "Diagnostic log level (debug|info|warn|error)")
	flags.StringVar(&commands.Global.LogFormat, "log-format", "text", "Diagnostic log format (text|json)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewOpenCommand())
	rootCmd.AddCommand(commands.NewViewCommand())
	rootCmd.AddCommand(commands.NewSummaryCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewChartCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
