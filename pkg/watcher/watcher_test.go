package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ccollicutt/logview/pkg/aggregator"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		fileType aggregator.FileType
		exclude  []string
		file     string
		want     bool
	}{
		{"text in both", aggregator.FileTypeBoth, nil, "app.txt", true},
		{"json in both", aggregator.FileTypeBoth, nil, "app.json", true},
		{"other extension", aggregator.FileTypeBoth, nil, "app.log", false},
		{"json filtered out", aggregator.FileTypeText, nil, "app.json", false},
		{"text filtered out", aggregator.FileTypeJSON, nil, "app.txt", false},
		{"excluded", aggregator.FileTypeBoth, []string{"*.tmp.json"}, "x.tmp.json", false},
		{"not excluded", aggregator.FileTypeBoth, []string{"*.tmp.json"}, "x.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(t.TempDir(), WithFileType(tt.fileType), WithExclude(tt.exclude))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer w.fsw.Close()

			if got := w.Match(tt.file); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("New() should fail for a missing directory")
	}
}

func TestStart_TriggersOnLogWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	if err := os.WriteFile(filepath.Join(dir, "ignored.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Triggers:
		t.Fatal("Unexpected trigger for a non-log file")
	case <-time.After(200 * time.Millisecond):
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(dir, "app.txt"), []byte("[2024-01-01] [INFO] hi\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-w.Triggers:
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for trigger")
	}
}
