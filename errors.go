package transcode

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrHandlerNotFound indicates no error handler is registered under a name.
	ErrHandlerNotFound = errors.New("unknown error handler")

	// ErrUnknownEncoding indicates no codec is registered under a name.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrInvalidHandlerResult indicates a handler returned a malformed result:
	// wrong shape or wrong content kind.
	ErrInvalidHandlerResult = errors.New("invalid handler result")

	// ErrPositionOutOfBounds indicates a handler returned a resume position
	// outside (start, len(object)].
	ErrPositionOutOfBounds = errors.New("position out of bounds")

	// ErrHandlerTypeMismatch indicates a handler was given an error context
	// of a kind it cannot handle.
	ErrHandlerTypeMismatch = errors.New("handler cannot handle error kind")

	// ErrInvalidContext indicates an error context was constructed with
	// invalid arguments.
	ErrInvalidContext = errors.New("invalid error context")

	// ErrEncode, ErrDecode and ErrTranslate match a *UnicodeError of the
	// corresponding kind.
	ErrEncode    = errors.New("encode failed")
	ErrDecode    = errors.New("decode failed")
	ErrTranslate = errors.New("translate failed")
)

// LookupError represents a failed registry lookup.
type LookupError struct {
	Err  error  // Underlying sentinel error (ErrHandlerNotFound, ErrUnknownEncoding)
	Name string // Name that was looked up
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s name %q", e.Err.Error(), e.Name)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// HandlerError represents a handler misbehaving: a malformed result, an
// out-of-range resume position, or a kind it does not handle.
type HandlerError struct {
	Err     error  // Underlying sentinel error
	Handler string // Registered handler name, empty when called directly
	Detail  string // What exactly was wrong
}

func (e *HandlerError) Error() string {
	msg := e.Err.Error()
	if e.Handler != "" {
		msg = fmt.Sprintf("%s (handler %q)", msg, e.Handler)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// newLookupError creates a LookupError for a missing registry entry.
func newLookupError(sentinel error, name string) error {
	return &LookupError{
		Err:  sentinel,
		Name: name,
	}
}

// newHandlerError creates a HandlerError.
func newHandlerError(sentinel error, handler, detail string, args ...any) error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &HandlerError{
		Err:     sentinel,
		Handler: handler,
		Detail:  detail,
	}
}

// mismatch reports that a handler cannot handle the given context.
func mismatch(exc *UnicodeError) error {
	if exc == nil {
		return newHandlerError(ErrHandlerTypeMismatch, "", "nil error context")
	}
	return newHandlerError(ErrHandlerTypeMismatch, "", "don't know how to handle %s", exc.Kind())
}
