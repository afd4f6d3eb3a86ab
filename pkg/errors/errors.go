// Package errors provides the error taxonomy used across the mvpa library.
// Errors are structured types carrying the failing operation and enough
// context to diagnose a run without re-executing it; constructors attach
// stack traces via cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// NotFittedError is returned when Predict, Transform or Score is called on
// an estimator before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("mvpa: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when input dimensions disagree with what the
// operation expects (mismatched row counts, wrong feature count, ...).
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows/samples, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("mvpa: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError is returned when an input parameter or data vector fails
// pre-flight validation, before any fold or fit runs.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mvpa: validation failed for '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError is returned when an argument value is unusable for the
// requested operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("mvpa: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// FitError is returned when an underlying model fit fails on a training
// partition, e.g. a degenerate single-class subset inside a validation
// fold. Fit errors are never skipped; they abort the whole search.
type FitError struct {
	ModelName string
	Reason    string
	Err       error
}

func (e *FitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mvpa: %s: fit failed: %s: %v", e.ModelName, e.Reason, e.Err)
	}
	return fmt.Sprintf("mvpa: %s: fit failed: %s", e.ModelName, e.Reason)
}

func (e *FitError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *FitError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("reason", e.Reason).
		Str("type", "FitError")
	if e.Err != nil {
		event.AnErr("cause", e.Err)
	}
}

// NewFitError creates a FitError with a stack trace attached.
func NewFitError(modelName, reason string, err error) error {
	fitErr := &FitError{ModelName: modelName, Reason: reason, Err: err}
	return errors.WithStack(fitErr)
}

// ScoreError is returned when scoring fails on a test partition, e.g. an
// empty or malformed held-out set. Same fatal propagation policy as
// FitError: no score error is downgraded to a default score.
type ScoreError struct {
	ModelName string
	Reason    string
	Err       error
}

func (e *ScoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mvpa: %s: score failed: %s: %v", e.ModelName, e.Reason, e.Err)
	}
	return fmt.Sprintf("mvpa: %s: score failed: %s", e.ModelName, e.Reason)
}

func (e *ScoreError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ScoreError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("reason", e.Reason).
		Str("type", "ScoreError")
	if e.Err != nil {
		event.AnErr("cause", e.Err)
	}
}

// NewScoreError creates a ScoreError with a stack trace attached.
func NewScoreError(modelName, reason string, err error) error {
	scoreErr := &ScoreError{ModelName: modelName, Reason: reason, Err: err}
	return errors.WithStack(scoreErr)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// Common error values.
var (
	// ErrEmptyData is returned when an empty matrix or vector is passed in.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a decomposition fails on singular data.
	ErrSingularMatrix = New("singular matrix")
)
