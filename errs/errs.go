// Package errs defines the error taxonomy shared by every façade in this
// module (spec §7). It is kept as its own leaf package — rather than
// living on the root spake2p package — so that hashkit, transcript, and
// primitives can all report errors through the same Kind without
// importing the state machine package and creating an import cycle
// (package group returns plain errors instead); the root package
// re-exports these types under its own names for callers who only ever
// import spake2p.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies the failure modes a façade operation can return.
type Kind uint8

const (
	// InvalidArgument indicates a malformed length, a missing required
	// buffer, or a value out of its expected domain.
	InvalidArgument Kind = iota
	// BufferTooSmall indicates the caller's output buffer is too small.
	BufferTooSmall
	// InvalidState indicates the operation was called in a phase that
	// forbids it.
	InvalidState
	// InvalidSignature indicates a MAC or ECDSA signature failed to verify.
	InvalidSignature
	// IntegrityCheckFailed indicates an AEAD tag mismatch.
	IntegrityCheckFailed
	// InternalError indicates a backend arithmetic, hash, or DRBG failure.
	InternalError
	// OutOfEntropy indicates the DRBG has not yet reached its seeding
	// threshold.
	OutOfEntropy
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case BufferTooSmall:
		return "buffer too small"
	case InvalidState:
		return "invalid state"
	case InvalidSignature:
		return "invalid signature"
	case IntegrityCheckFailed:
		return "integrity check failed"
	case InternalError:
		return "internal error"
	case OutOfEntropy:
		return "out of entropy"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by every operation in this
// module. It carries a Kind so callers can branch on failure category
// without parsing message text.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("spake2p: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("spake2p: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is implements the errors.Is comparison contract: two *Error values match
// if they carry the same Kind, regardless of Op/Err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error for op, tagged with kind and wrapping err
// (which may be nil).
func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Sentinels so callers can use errors.Is against a Kind-equivalent value
// without reaching into the *Error struct.
var (
	ErrInvalidArgument      = &Error{Kind: InvalidArgument}
	ErrBufferTooSmall       = &Error{Kind: BufferTooSmall}
	ErrInvalidState         = &Error{Kind: InvalidState}
	ErrInvalidSignature     = &Error{Kind: InvalidSignature}
	ErrIntegrityCheckFailed = &Error{Kind: IntegrityCheckFailed}
	ErrInternalError        = &Error{Kind: InternalError}
	ErrOutOfEntropy         = &Error{Kind: OutOfEntropy}
)

// IsKind reports whether err is a *Error (possibly wrapped) of the given
// Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
