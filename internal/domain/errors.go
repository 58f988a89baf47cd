package domain

import (
	"errors"
	"fmt"

	m "preamble.dev/pkg/preamble/internal/model"
)

// Error taxonomy of a run. Every per-file failure wraps exactly one of these.
var (
	ErrEnumeration        = errors.New("enumeration error")
	ErrFilterOracle       = errors.New("ignore oracle error")
	ErrResolutionNotFound = errors.New("ResolutionNotFound")
	ErrRead               = errors.New("read error")
	ErrWrite              = errors.New("write error")
	ErrUnsupportedSyntax  = errors.New("no comment token for extension")
	ErrTemplateLoad       = errors.New("template load error")
	ErrConfig             = errors.New("configuration error")
)

// FileError ties a per-file failure to its path.
type FileError struct {
	Path m.Path
	Kind error
	Err  error
}

func newFileError(path m.Path, kind, err error) *FileError {
	return &FileError{Path: path, Kind: kind, Err: err}
}

// Error implements error.
func (e *FileError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}

	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the taxonomy kind and the underlying cause to errors.Is.
func (e *FileError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}
