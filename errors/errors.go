// Package errors defines all exported error sentinels for the pwnedlist library.
//
// Both the top-level pwnedlist package and the command-line tool import from
// here, so errors.Is checks work across package boundaries.
package errors

import (
	"errors"
	"fmt"
)

// Open errors
var (
	// ErrIO reports that the hash list could not be opened, inspected or mapped.
	// The underlying OS error is wrapped alongside it.
	ErrIO = errors.New("pwnedlist: i/o error")

	// ErrFormat reports that the first record of the hash list could not be
	// interpreted as <hex digest><separator>.
	ErrFormat = errors.New("pwnedlist: unrecognized hash list format")
)

// Layout inference errors. Each wraps ErrFormat.
var (
	ErrEmptyFile      = fmt.Errorf("%w: file is empty", ErrFormat)
	ErrEmptyFirstLine = fmt.Errorf("%w: first line is empty", ErrFormat)
	ErrNoHashField    = fmt.Errorf("%w: first line has no alphanumeric hash field", ErrFormat)
	ErrNonASCII       = fmt.Errorf("%w: first line is not ASCII", ErrFormat)
	ErrShortRecord    = fmt.Errorf("%w: first line is shorter than the digest", ErrFormat)
)

// Query errors
var (
	ErrIndexClosed      = errors.New("pwnedlist: index is closed")
	ErrUnknownAlgorithm = errors.New("pwnedlist: unknown hash algorithm")
	ErrPasswordTooLong  = errors.New("pwnedlist: too many cased letters for a case-insensitive probe")
)

// Verification errors
var (
	ErrUnsorted        = errors.New("pwnedlist: records are not sorted")
	ErrMalformedRecord = errors.New("pwnedlist: record does not match the inferred layout")
)
