// Package errs defines the sentinel errors returned by ncpipe.
//
// Operations wrap these values with additional context using fmt.Errorf and
// the %w verb, so callers should compare with errors.Is rather than ==.
package errs

import (
	"errors"
	"fmt"
)

// Encoding configuration errors.
var (
	// ErrUnsupportedContainer is returned when the container format lacks the
	// enhanced capability needed for filters and quantization.
	ErrUnsupportedContainer = errors.New("operation requires an enhanced format container")
	// ErrInvalidTarget is returned when the whole-container id is passed where
	// a single variable is required.
	ErrInvalidTarget = errors.New("whole-container id is not a valid target")
	// ErrNotFound is returned when a variable or filter does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned for out-of-range or unrecognized values.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTooLateToDefine is returned when encoding configuration is changed
	// after the definition phase has ended.
	ErrTooLateToDefine = errors.New("too late to change encoding configuration")
	// ErrFilterUnavailable is returned when a filter id has no registered implementation.
	ErrFilterUnavailable = fmt.Errorf("%w: filter not available", ErrInvalidArgument)
)

// Container lifecycle errors.
var (
	ErrNotInDefineMode = errors.New("container is not in definition phase")
	ErrInDefineMode    = errors.New("container is in definition phase")
	ErrReadOnly        = errors.New("container is read-only")
	ErrClosed          = errors.New("container is closed")
	ErrExists          = errors.New("file already exists")
	ErrNameInUse       = errors.New("variable name already in use")
	ErrInvalidName     = errors.New("invalid variable name")
	ErrTypeMismatch    = errors.New("value type does not match variable type")
)

// Binary layout errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidHeader      = errors.New("invalid container header")
	ErrInvalidRecord      = errors.New("invalid variable record")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrUnsupportedVersion = errors.New("unsupported format version")
)

// Schema errors.
var (
	ErrInvalidSchema = errors.New("invalid container schema")
)
