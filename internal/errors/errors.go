// Package errors defines the structured error types shared by the image slot
// packages.
//
// Two classes of failure exist. Configuration errors (*ConfigError) are fatal
// for the section being bound and are returned to the caller unchanged.
// Everything else is a *ProcessingError tagged with a Category; load and
// decode failures are recoverable and handled by emptying the slot.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies error types for targeted handling.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryLoad     Category = "load"
	CategoryDecode   Category = "decode"
	CategoryPipeline Category = "pipeline"
	CategoryInput    Category = "input"
	CategoryEncode   Category = "encode"
)

// ProcessingError is the structured error type used for recoverable failures.
type ProcessingError struct {
	Category Category
	Op       string // operation name
	Err      error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.Op, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// New creates a ProcessingError.
func New(category Category, op string, err error) *ProcessingError {
	return &ProcessingError{Category: category, Op: op, Err: err}
}

// Wrap wraps an existing error with context. It returns nil for a nil err.
func Wrap(category Category, op string, err error) error {
	if err == nil {
		return nil
	}
	return New(category, op, err)
}

// IsCategory reports whether err belongs to the given category. A *ConfigError
// always belongs to CategoryConfig.
func IsCategory(err error, cat Category) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return cat == CategoryConfig
	}
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Category == cat
	}
	return false
}

// ConfigError reports an invalid value for a configuration key. It names the
// key, the offending value and the section it was read from.
type ConfigError struct {
	Key     string
	Value   string
	Section string
	// Detail is an optional qualifier printed after the value, e.g. "(origin)".
	Detail string
	Err    error
}

func (e *ConfigError) Error() string {
	detail := ""
	if e.Detail != "" {
		detail = " " + e.Detail
	}
	return fmt.Sprintf("%s=%s%s is not valid in section [%s]", e.Key, e.Value, detail, e.Section)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AsConfigError returns the *ConfigError in err's chain, if any.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Sentinel errors for common failure modes.
var (
	ErrInvalidAnchor = errors.New("invalid crop anchor")
	ErrInvalidFlip   = errors.New("invalid flip mode")
	ErrEmptyInput    = errors.New("empty input")
	ErrNoImage       = errors.New("no image loaded")
	ErrUnknownSlot   = errors.New("unknown slot")
)
