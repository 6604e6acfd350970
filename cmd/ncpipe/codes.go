package main

import (
	"errors"
	"io/fs"

	errs "github.com/bdlm/errors"
	std "github.com/bdlm/std/error"

	nerrs "github.com/arloliu/ncpipe/errs"
)

const (
	// ErrUnspecified - 1000: The error code was unspecified
	ErrUnspecified std.Code = iota + 1000
	// ErrUsage - 1001: Invalid command line
	ErrUsage
	// ErrSchema - 1002: The schema could not be read or is invalid
	ErrSchema
	// ErrConfiguration - 1003: The container rejected the encoding configuration
	ErrConfiguration
	// ErrCorrupt - 1004: The container file is damaged
	ErrCorrupt
	// ErrIO - 1005: The container file could not be read or written
	ErrIO
)

func init() {
	errs.Codes[ErrUnspecified] = errs.ErrCode{Ext: "An unknown error occurred", Int: "An unknown error occurred", HTTP: 500}
	errs.Codes[ErrUsage] = errs.ErrCode{Ext: "Invalid command line", Int: "Invalid command line arguments", HTTP: 400}
	errs.Codes[ErrSchema] = errs.ErrCode{Ext: "Invalid schema", Int: "The container schema could not be parsed or resolved", HTTP: 400}
	errs.Codes[ErrConfiguration] = errs.ErrCode{Ext: "Invalid encoding configuration", Int: "The container rejected a variable or encoding definition", HTTP: 422}
	errs.Codes[ErrCorrupt] = errs.ErrCode{Ext: "Corrupt container", Int: "The container header, metadata or data failed validation", HTTP: 422}
	errs.Codes[ErrIO] = errs.ErrCode{Ext: "I/O failure", Int: "The container file could not be read or written", HTTP: 500}
}

// codeFor maps an ncpipe error to its CLI error code.
func codeFor(err error) std.Code {
	switch {
	case err == nil:
		return ErrUnspecified
	case errors.Is(err, nerrs.ErrInvalidSchema):
		return ErrSchema
	case errors.Is(err, nerrs.ErrInvalidHeader),
		errors.Is(err, nerrs.ErrInvalidHeaderSize),
		errors.Is(err, nerrs.ErrInvalidRecord),
		errors.Is(err, nerrs.ErrChecksumMismatch),
		errors.Is(err, nerrs.ErrUnsupportedVersion):
		return ErrCorrupt
	case errors.Is(err, nerrs.ErrInvalidArgument),
		errors.Is(err, nerrs.ErrUnsupportedContainer),
		errors.Is(err, nerrs.ErrInvalidTarget),
		errors.Is(err, nerrs.ErrNotFound),
		errors.Is(err, nerrs.ErrTooLateToDefine),
		errors.Is(err, nerrs.ErrNameInUse),
		errors.Is(err, nerrs.ErrInvalidName):
		return ErrConfiguration
	case errors.Is(err, nerrs.ErrExists),
		errors.Is(err, nerrs.ErrReadOnly),
		errors.Is(err, nerrs.ErrClosed):
		return ErrIO
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return ErrIO
		}

		return ErrUnspecified
	}
}
