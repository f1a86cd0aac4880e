// Package source provides access to the directory a log view is built from.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// ErrPermissionDenied is returned when a directory cannot be accessed.
var ErrPermissionDenied = errors.New("permission denied")

// NotFoundError reports a directory that does not exist. Access to it can
// never be granted, so it matches both fs.ErrNotExist and ErrPermissionDenied.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("directory %s not found", e.Path)
}

// Is reports whether target is fs.ErrNotExist or ErrPermissionDenied.
func (e *NotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist || target == ErrPermissionDenied
}

// existenceChecker is implemented by directories that can tell a missing
// path from an unreadable one.
type existenceChecker interface {
	exists() bool
}

// Access is the outcome of a permission check.
type Access int

const (
	AccessUnknown Access = iota
	AccessGranted
	AccessDenied
)

// String returns the access state name.
func (a Access) String() string {
	switch a {
	case AccessGranted:
		return "granted"
	case AccessDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// EntryKind classifies a directory entry.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
	KindOther
)

// Entry is one item listed in a directory.
type Entry struct {
	Name string
	Kind EntryKind
}

// Directory is a user-granted directory of log files.
type Directory interface {
	// Name returns a display name for the directory.
	Name() string

	// CheckAccess reports the current access state without side effects.
	CheckAccess(ctx context.Context) Access

	// RequestAccess asks for read access. It never returns AccessUnknown.
	RequestAccess(ctx context.Context) Access

	// Entries lists the directory's immediate entries.
	Entries(ctx context.Context) ([]Entry, error)

	// ReadFile returns the full text content of the named entry.
	ReadFile(ctx context.Context, name string) (string, error)
}

// VerifyAccess checks access and requests it when not already granted.
func VerifyAccess(ctx context.Context, dir Directory) error {
	if dir.CheckAccess(ctx) == AccessGranted {
		return nil
	}
	if dir.RequestAccess(ctx) == AccessGranted {
		return nil
	}
	if ec, ok := dir.(existenceChecker); ok && !ec.exists() {
		return &NotFoundError{Path: dir.Name()}
	}
	return fmt.Errorf("reading %s: %w", dir.Name(), ErrPermissionDenied)
}
