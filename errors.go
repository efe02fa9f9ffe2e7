package ppcutils

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// HarnessError is the error type returned by every ppcutils component. Each one
// descends from one of the sentinel errors below, so callers can use errors.Is
// to classify a failure no matter how many messages were appended to it.
type HarnessError interface {
	error
	WithMessage(message string) HarnessError
	Wrap(err error) HarnessError
}

type baseHarnessError string

const rootError = baseHarnessError("")

// Fatal pre-flight errors.
var ErrNotAbsolute = rootError.WithMessage("Path must be absolute")
var ErrMissingInput = rootError.WithMessage("Missing input file")
var ErrUnreadableInput = rootError.WithMessage("Cannot read input file")
var ErrOutputNotCreatable = rootError.WithMessage("Cannot create output directory")
var ErrOutputNotWritable = rootError.WithMessage("Cannot write to output directory")
var ErrOutputNotEmpty = rootError.WithMessage("Output directory is not empty")
var ErrIncompatibleOptions = rootError.WithMessage("Incompatible options")
var ErrTooManyVolumes = rootError.WithMessage("Too many archive volumes")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")
var ErrNotEnoughOffsets = rootError.WithMessage("Not enough distinct offsets")

var preflightErrors = []error{
	ErrNotAbsolute,
	ErrMissingInput,
	ErrUnreadableInput,
	ErrOutputNotCreatable,
	ErrOutputNotWritable,
	ErrOutputNotEmpty,
	ErrIncompatibleOptions,
	ErrTooManyVolumes,
	ErrInvalidArgument,
	ErrNotEnoughOffsets,
}

// IsPreflight reports whether err was raised while checking a command's inputs,
// before any work was done. Such errors leave nothing to clean up.
func IsPreflight(err error) bool {
	for _, target := range preflightErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Per-item errors. These are recorded and tallied, never fatal.
var ErrCommandFailed = rootError.WithMessage("Command failed")
var ErrMalformedRecord = rootError.WithMessage("Malformed benchmark record")
var ErrUnsafePath = rootError.WithMessage("Archive entry escapes destination")

func (e baseHarnessError) Error() string {
	return string(e)
}

func (e baseHarnessError) WithMessage(message string) HarnessError {
	return customHarnessError{
		message:       message,
		originalError: e,
	}
}

func (e baseHarnessError) Wrap(err error) HarnessError {
	return wrapHarnessError(e, err)
}

// wrapHarnessError keeps both parent and err reachable through errors.Is.
func wrapHarnessError(parent HarnessError, err error) HarnessError {
	return customHarnessError{
		message:       fmt.Sprintf("%s: %s", parent.Error(), err.Error()),
		originalError: multierror.Append(parent, err),
	}
}

// -----------------------------------------------------------------------------

type customHarnessError struct {
	message       string
	originalError error
}

func (e customHarnessError) Error() string {
	return e.message
}

func (e customHarnessError) WithMessage(message string) HarnessError {
	return customHarnessError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customHarnessError) Wrap(err error) HarnessError {
	return wrapHarnessError(e, err)
}

func (e customHarnessError) Unwrap() error {
	return e.originalError
}
