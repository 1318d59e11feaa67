// Package errors provides the coded errors boxscene reports.
//
// Every failure that reaches a user carries a [Code]. The CLI turns codes
// into exit statuses and the preview server into HTTP statuses; both print
// [UserMessage] rather than the raw error string.
//
// Codes fall into two classes. Client codes mean the diagram or the request
// is wrong (a bad box model, a position cycle, a reference to a missing
// element) and retrying it unchanged will fail again. Everything else is an
// operational failure.
//
//	err := errors.New(errors.ErrCodePositionCycle, "position %s relative to %s", a, b)
//	if errors.Is(err, errors.ErrCodePositionCycle) {
//		// the author must break the cycle
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidDiagram, err, "build %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	// Diagram and request input.
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidBoxModel Code = "INVALID_BOX_MODEL"
	ErrCodeInvalidDiagram  Code = "INVALID_DIAGRAM"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidTarget   Code = "INVALID_TARGET"
	ErrCodeMissingParam    Code = "MISSING_PARAMETER"

	// Scene graph structure.
	ErrCodePositionCycle  Code = "POSITION_CYCLE"
	ErrCodeOwnershipCycle Code = "OWNERSHIP_CYCLE"
	ErrCodeUnknownElement Code = "UNKNOWN_ELEMENT"

	// Environment and operation.
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeRateLimited  Code = "RATE_LIMITED"
	ErrCodeRenderFailed Code = "RENDER_FAILED"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

var clientCodes = map[Code]bool{
	ErrCodeInvalidInput:    true,
	ErrCodeInvalidConfig:   true,
	ErrCodeInvalidBoxModel: true,
	ErrCodeInvalidDiagram:  true,
	ErrCodeInvalidFormat:   true,
	ErrCodeInvalidTarget:   true,
	ErrCodeMissingParam:    true,
	ErrCodePositionCycle:   true,
	ErrCodeOwnershipCycle:  true,
	ErrCodeUnknownElement:  true,
}

// Client reports whether c blames the caller's input.
func (c Code) Client() bool { return clientCodes[c] }

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error that keeps cause in the chain.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsClientError reports whether err carries a client code. The preview
// server answers these with 4xx statuses and the CLI exits with 2.
func IsClientError(err error) bool {
	return GetCode(err).Client()
}

// UserMessage renders err for people: messages of nested *Errors joined by
// ": ", without their codes.
func UserMessage(err error) string {
	e, ok := asError(err)
	if !ok {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
