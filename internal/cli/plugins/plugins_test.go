package plugins

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFinder_NotFound(t *testing.T) {
	f := &Finder{Dirs: []string{t.TempDir()}}
	if _, err := f.Find("nonexistent-plugin-xyz"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("expected ErrPluginNotFound, got %v", err)
	}
}

func TestFinder_RejectsPaths(t *testing.T) {
	f := &Finder{Dirs: []string{t.TempDir()}, SearchPath: true}
	for _, name := range []string{"", "../evil", "a/b"} {
		if _, err := f.Find(name); !errors.Is(err, ErrPluginNotFound) {
			t.Errorf("Find(%q) error = %v, want ErrPluginNotFound", name, err)
		}
	}
}

func TestFinder_SearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	writePlugin(t, second, "testplugin")
	f := &Finder{Dirs: []string{first, second}}

	found, err := f.Find("testplugin")
	if err != nil {
		t.Fatalf("expected to find plugin, got error: %v", err)
	}
	if want := filepath.Join(second, Prefix+"testplugin"); found != want {
		t.Errorf("expected %s, got %s", want, found)
	}

	writePlugin(t, first, "testplugin")
	found, err = f.Find("testplugin")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if want := filepath.Join(first, Prefix+"testplugin"); found != want {
		t.Errorf("earlier directory should win: got %s, want %s", found, want)
	}
}

func TestExecute_ExitCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Prefix+"exit")
	script := "#!/bin/sh\necho \"args: $*\"\nexit 3\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to create plugin: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), path, []string{"a", "b"}, nil, &stdout, &stderr)
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if got := strings.TrimSpace(stdout.String()); got != "args: a b" {
		t.Errorf("stdout = %q", got)
	}
}

func TestFormatNotFoundError(t *testing.T) {
	err := FormatNotFoundError("unknown")

	for _, want := range []string{`"unknown"`, "logview-unknown", "~/.logview/plugins/logview-unknown", "logview --help"} {
		if !strings.Contains(err, want) {
			t.Errorf("expected error to contain %q:\n%s", want, err)
		}
	}
}

func TestIsExecutable(t *testing.T) {
	tmpDir := t.TempDir()

	nonExec := filepath.Join(tmpDir, "nonexec")
	if err := os.WriteFile(nonExec, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if isExecutable(nonExec) {
		t.Error("non-executable file should not be detected as executable")
	}

	exec := filepath.Join(tmpDir, "exec")
	if err := os.WriteFile(exec, []byte("test"), 0755); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if !isExecutable(exec) {
		t.Error("executable file should be detected as executable")
	}

	if isExecutable(tmpDir) {
		t.Error("directory should not be detected as executable")
	}
	if isExecutable(filepath.Join(tmpDir, "nonexistent")) {
		t.Error("non-existent file should not be detected as executable")
	}
}

func writePlugin(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, Prefix+name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho test\n"), 0755); err != nil {
		t.Fatalf("failed to create test plugin: %v", err)
	}
}
