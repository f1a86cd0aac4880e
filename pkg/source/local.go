package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local is a directory on the local filesystem.
type Local struct {
	path string
}

// NewLocal returns a Directory for the given path. The path is made
// absolute so that the remembered reference survives working directory
// changes.
func NewLocal(path string) (*Local, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	return &Local{path: abs}, nil
}

// Name returns the absolute directory path.
func (d *Local) Name() string {
	return d.path
}

// Path returns the absolute directory path.
func (d *Local) Path() string {
	return d.path
}

// CheckAccess denies missing or non-directory paths. An existing directory
// reports AccessUnknown: only opening it proves it is readable.
func (d *Local) CheckAccess(_ context.Context) Access {
	info, err := os.Stat(d.path)
	if err != nil {
		if os.IsPermission(err) || os.IsNotExist(err) {
			return AccessDenied
		}
		return AccessUnknown
	}
	if !info.IsDir() {
		return AccessDenied
	}
	return AccessUnknown
}

func (d *Local) exists() bool {
	_, err := os.Stat(d.path)
	return !errors.Is(err, fs.ErrNotExist)
}

// RequestAccess opens the directory for reading. The OS either grants
// it or not; there is nothing to prompt.
func (d *Local) RequestAccess(_ context.Context) Access {
	f, err := os.Open(d.path) // #nosec G304 -- user-selected directory is expected
	if err != nil {
		return AccessDenied
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return AccessDenied
	}
	return AccessGranted
}

// Entries lists the directory.
func (d *Local) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", d.path, err)
	}
	return toEntries(dirEntries, d.statTarget), nil
}

// statTarget follows a symlink so that links to log files are read like
// the files themselves.
func (d *Local) statTarget(name string) (fs.FileInfo, error) {
	return os.Stat(filepath.Join(d.path, name))
}

// ReadFile reads a file in the directory.
func (d *Local) ReadFile(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(d.path, name)) // #nosec G304 -- names come from the directory listing
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// toEntries classifies directory entries. Symlinks are classified by their
// target when follow is set; broken links are KindOther.
func toEntries(dirEntries []fs.DirEntry, follow func(name string) (fs.FileInfo, error)) []Entry {
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		mode := de.Type()
		if mode&fs.ModeSymlink != 0 && follow != nil {
			if info, err := follow(de.Name()); err == nil {
				mode = info.Mode().Type()
			}
		}

		kind := KindOther
		switch {
		case mode.IsRegular():
			kind = KindFile
		case mode.IsDir():
			kind = KindDirectory
		}
		entries = append(entries, Entry{Name: de.Name(), Kind: kind})
	}
	return entries
}
