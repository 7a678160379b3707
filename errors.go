package spake2p

import "github.com/weaveiot/spake2p/errs"

// Kind, Error and the sentinel errors below are aliases onto package errs
// (spec §7's error taxonomy), so that code importing only this root
// package sees a single, self-contained error surface while hashkit,
// transcript and primitives share the same underlying type without
// importing this package. Package group returns plain errors, which this
// package wraps in an *Error.
type Kind = errs.Kind

const (
	InvalidArgument      = errs.InvalidArgument
	BufferTooSmall       = errs.BufferTooSmall
	InvalidState         = errs.InvalidState
	InvalidSignature     = errs.InvalidSignature
	IntegrityCheckFailed = errs.IntegrityCheckFailed
	InternalError        = errs.InternalError
	OutOfEntropy         = errs.OutOfEntropy
)

type Error = errs.Error

var (
	ErrInvalidArgument      = errs.ErrInvalidArgument
	ErrBufferTooSmall       = errs.ErrBufferTooSmall
	ErrInvalidState         = errs.ErrInvalidState
	ErrInvalidSignature     = errs.ErrInvalidSignature
	ErrIntegrityCheckFailed = errs.ErrIntegrityCheckFailed
	ErrInternalError        = errs.ErrInternalError
	ErrOutOfEntropy         = errs.ErrOutOfEntropy
)

// IsKind reports whether err is a *Error (possibly wrapped) of the given
// Kind.
func IsKind(err error, kind Kind) bool { return errs.IsKind(err, kind) }

func newErr(op string, kind Kind, err error) *Error { return errs.New(op, kind, err) }
