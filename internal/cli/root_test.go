package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ccollicutt/logview/internal/cli/commands"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PATH", t.TempDir())
	t.Setenv("LOGVIEW_DIRECTORY", "")
	t.Setenv("LOGVIEW_FILE_TYPE", "")
	t.Cleanup(func() { commands.ExitCode = 0 })
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "logview" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
	for _, flag := range []string{"config", "log-level", "log-format"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("Missing persistent flag %s", flag)
		}
	}

	want := []string{"chart", "detect", "diagnose", "export", "open", "summary", "validate", "version", "view", "watch"}
	for _, name := range want {
		if !isBuiltinCommand(cmd, name) {
			t.Errorf("Missing subcommand %s", name)
		}
	}
	if got := len(cmd.Commands()); got != len(want) {
		t.Errorf("Subcommands = %d, want %d", got, len(want))
	}
}

func TestIsBuiltinCommand(t *testing.T) {
	cmd := NewRootCommand()

	tests := []struct {
		name string
		want bool
	}{
		{"view", true},
		{"help", true},
		{"completion", true},
		{"__complete", true},
		{"tail", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isBuiltinCommand(cmd, tt.name); got != tt.want {
			t.Errorf("isBuiltinCommand(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRun_ExitCodes(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	content := "[2024-01-01T10:00:00Z] [INFO] started\n[2024-01-01T10:01:00Z] [ERROR] failed\n"
	if err := os.WriteFile(filepath.Join(dir, "app.txt"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write log: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"version", []string{"version"}, 0},
		{"summary passes", []string{"summary", "--fail-on", "CRITICAL", dir}, 0},
		{"summary threshold hit", []string{"summary", "--fail-on", "ERROR", dir}, 1},
		{"missing directory", []string{"view", filepath.Join(dir, "missing")}, 2},
		{"bad log level", []string{"--log-level", "loud", "view", dir}, 2},
		{"unknown command", []string{"tail"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands.ExitCode = 0
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRun_Plugin(t *testing.T) {
	isolate(t)

	pluginDir := filepath.Join(os.Getenv("HOME"), ".logview", "plugins")
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("Failed to create plugin dir: %v", err)
	}
	script := "#!/bin/sh\nexit 3\n"
	if err := os.WriteFile(filepath.Join(pluginDir, "logview-hello"), []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write plugin: %v", err)
	}

	if got := run([]string{"hello", "world"}); got != 3 {
		t.Errorf("run(hello) = %d, want plugin exit code 3", got)
	}
}
