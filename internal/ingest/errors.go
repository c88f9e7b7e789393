package ingest

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a source file could not be loaded.
type ErrorKind string

const (
	// KindUnreadable means the file could not be opened or read.
	KindUnreadable ErrorKind = "unreadable"
	// KindEncoding means the bytes could not be decoded with the configured encoding.
	KindEncoding ErrorKind = "encoding"
	// KindMalformed means the CSV structure could not be parsed.
	KindMalformed ErrorKind = "malformed"
	// KindEmpty means the file has no header row.
	KindEmpty ErrorKind = "empty"
)

// Sentinel errors matched with errors.Is against a *FileError.
var (
	ErrUnreadable = errors.New("file unreadable")
	ErrEncoding   = errors.New("encoding error")
	ErrMalformed  = errors.New("malformed csv")
	ErrEmpty      = errors.New("no columns to parse from file")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindEncoding:
		return ErrEncoding
	case KindMalformed:
		return ErrMalformed
	case KindEmpty:
		return ErrEmpty
	default:
		return ErrUnreadable
	}
}

// FileError is returned when a single source file fails to load.
type FileError struct {
	Path string
	Kind ErrorKind
	Err  error
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Kind.sentinel())
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind.sentinel(), e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *FileError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// KindOf returns the ErrorKind carried by err, or "" when err is not a *FileError.
func KindOf(err error) ErrorKind {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
