// Package errors defines the typed error kinds surfaced across baliusd's
// subsystems, per the propagation policy: store errors bubble to the
// caller, registration errors are captured rather than halted, and signer
// errors distinguish a missing key from an internal KMS failure.
package errors

import "fmt"

// Kind identifies which subsystem raised an error.
type Kind string

const (
	KindStore          Kind = "store"
	KindConfig         Kind = "config"
	KindRegistration   Kind = "registration"
	KindSignerNotFound Kind = "signer_key_not_found"
	KindSignerInternal Kind = "signer_internal"
	KindKvNotFound     Kind = "kv_not_found"
	KindKvInternal     Kind = "kv_internal"
	KindRuntime        Kind = "runtime"
	KindOperator       Kind = "operator"
)

// Error is a typed, wrappable error carrying a Kind for callers that need
// to branch on failure category (e.g. the dispatcher distinguishing
// KvNotFound from KvInternal).
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func Store(err error, format string, args ...any) *Error {
	return newf(KindStore, err, format, args...)
}

func Config(err error, format string, args ...any) *Error {
	return newf(KindConfig, err, format, args...)
}

func Registration(err error, format string, args ...any) *Error {
	return newf(KindRegistration, err, format, args...)
}

func SignerNotFound(err error, format string, args ...any) *Error {
	return newf(KindSignerNotFound, err, format, args...)
}

func SignerInternal(err error, format string, args ...any) *Error {
	return newf(KindSignerInternal, err, format, args...)
}

func KvNotFound(format string, args ...any) *Error {
	return newf(KindKvNotFound, nil, format, args...)
}

func KvInternal(err error, format string, args ...any) *Error {
	return newf(KindKvInternal, err, format, args...)
}

func Runtime(err error, format string, args ...any) *Error {
	return newf(KindRuntime, err, format, args...)
}

func Operator(err error, format string, args ...any) *Error {
	return newf(KindOperator, err, format, args...)
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if as, ok := err.(*Error); ok {
		e = as
	} else {
		return false
	}
	return e.Kind == kind
}
