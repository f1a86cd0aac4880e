package source

import (
	"context"
	"fmt"
	"io/fs"
)

// FS adapts an io/fs.FS (an embedded tree, a test fixture) to Directory.
// Access is always granted.
type FS struct {
	name string
	fsys fs.FS
}

// NewFS returns a Directory reading the root of fsys.
func NewFS(name string, fsys fs.FS) *FS {
	return &FS{name: name, fsys: fsys}
}

// Name returns the display name given at construction.
func (d *FS) Name() string {
	return d.name
}

// CheckAccess always grants access.
func (d *FS) CheckAccess(_ context.Context) Access {
	return AccessGranted
}

// RequestAccess always grants access.
func (d *FS) RequestAccess(_ context.Context) Access {
	return AccessGranted
}

// Entries lists the root of the filesystem.
func (d *FS) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := fs.ReadDir(d.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", d.name, err)
	}
	return toEntries(dirEntries, nil), nil
}

// ReadFile reads a file at the root of the filesystem.
func (d *FS) ReadFile(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
