// Package storeerr defines the error taxonomy shared by the store and every
// service layered on top of it, so callers can errors.As regardless of
// which store backend or service produced the failure.
package storeerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure the way the agent runners need to react to it.
type Kind string

const (
	KindNotReady       Kind = "not_ready"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidState   Kind = "invalid_state"
	KindTrainingFailed Kind = "training_failed"
	KindTransient      Kind = "transient"
	KindCancelled      Kind = "cancelled"
)

// Error wraps an underlying cause with a Kind so runners can decide whether
// to retry, skip, or unwind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, storeerr.KindNotFound) style checks by comparing
// Kind values wrapped in a bare Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func NotReady(op string, err error) *Error       { return New(op, KindNotReady, err) }
func NotFound(op string, err error) *Error       { return New(op, KindNotFound, err) }
func Conflict(op string, err error) *Error       { return New(op, KindConflict, err) }
func InvalidInput(op string, err error) *Error   { return New(op, KindInvalidInput, err) }
func InvalidState(op string, err error) *Error   { return New(op, KindInvalidState, err) }
func TrainingFailed(op string, err error) *Error { return New(op, KindTrainingFailed, err) }
func Transient(op string, err error) *Error      { return New(op, KindTransient, err) }
func Cancelled(op string, err error) *Error      { return New(op, KindCancelled, err) }

// Sentinel comparison values, usable with errors.Is(err, storeerr.ErrNotFound).
var (
	ErrNotReady       = &Error{Kind: KindNotReady}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrConflict       = &Error{Kind: KindConflict}
	ErrInvalidInput   = &Error{Kind: KindInvalidInput}
	ErrInvalidState   = &Error{Kind: KindInvalidState}
	ErrTrainingFailed = &Error{Kind: KindTrainingFailed}
	ErrTransient      = &Error{Kind: KindTransient}
	ErrCancelled      = &Error{Kind: KindCancelled}
)

// KindOf extracts the Kind from err, or "" if err does not wrap an Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
