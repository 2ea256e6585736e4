// Package serrors provides semantic errors for the admission workflow.
// Every failure a caller can act on is categorized by a Kind sentinel;
// errors.Is/As work against both the kind and the wrapped cause.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind. It allows distinguishing semantic kinds from ordinary errors.
type Kind interface {
	error
	isKind()
}

// kind is an unexported implementation of Kind used as a sentinel value for a
// semantic error category.
type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided
// name. Kinds are comparable and can be used with errors.Is/As through the
// serrors.Error wrapper.
func NewKind(name string) Kind { return kind{s: name} }

// Error kinds of the admission workflow. Mutating operations return exactly
// one of these; read-side aggregation degrades instead of returning them.
var (
	// ErrValidation indicates the submission draft failed shape or
	// business-rule validation. Recoverable by resubmission; the attached
	// field problems name the offending fields.
	ErrValidation = NewKind("VALIDATION")
	// ErrCapacityExceeded indicates the per-institution application cap would
	// be violated. Recoverable: withdraw an existing application or pick
	// another institution.
	ErrCapacityExceeded = NewKind("CAPACITY_EXCEEDED")
	// ErrInvalidTransition indicates the requested status change is not
	// permitted from the current state for the acting role. Never auto-retried.
	ErrInvalidTransition = NewKind("INVALID_TRANSITION")
	// ErrNotFound indicates a referenced application, course or institution
	// does not resolve.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrPersistence indicates the underlying store was unavailable or a write
	// failed. Surfaced to callers as a generic try-again failure.
	ErrPersistence = NewKind("PERSISTENCE")
	// ErrUnauthorized indicates missing or invalid authentication.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrForbidden indicates the caller is authenticated but the acting role
	// is not allowed to perform the operation.
	ErrForbidden = NewKind("FORBIDDEN")
)

// FieldProblem names a single field that failed validation and why.
type FieldProblem struct {
	// Field is the JSON name of the offending field.
	Field string `json:"field"`
	// Problem is a human-readable description of what is wrong.
	Problem string `json:"problem"`
}

// Error represents a semantic error carrying a kind (sentinel), an optional
// wrapped error, an optional message and, for validation failures, the list
// of field problems. It fully supports errors.Is/errors.As and unwrapping.
//
// Matching semantics:
//   - errors.Is(err, target) matches if target matches either the kind
//     sentinel or the wrapped error.
//   - errors.As(err, target) succeeds for either the kind sentinel or the
//     wrapped error.
type Error struct {
	kind   Kind  // semantic kind sentinel
	err    error // wrapped error (optional)
	msg    string
	fields []FieldProblem
}

// With constructs a new semantic error with the given kind and an arbitrary
// human-readable message. Use Wrap if you also want to wrap a concrete cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind, wraps the provided
// cause (err) and allows adding an arbitrary message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind without extra
// message or concrete cause.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Invalid constructs a validation error carrying the given field problems.
func Invalid(problems ...FieldProblem) *Error {
	return &Error{kind: ErrValidation, msg: "submission is invalid", fields: problems}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped error, enabling errors.Unwrap/Is/As to traverse
// the underlying cause chain.
func (e *Error) Unwrap() error { return e.err }

// Is enables matching against either the semantic kind sentinel or the wrapped
// error in the chain. This ensures that errors.Is works for both.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As enables type assertions against either the semantic kind sentinel or the
// wrapped error in the chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the arbitrary message attached to this error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }

// Fields returns the field problems attached to a validation error.
func (e *Error) Fields() []FieldProblem { return e.fields }

// FieldsOf extracts the field problems from any error in err's chain that is
// a *serrors.Error, or nil when there are none.
func FieldsOf(err error) []FieldProblem {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields()
	}

	return nil
}
