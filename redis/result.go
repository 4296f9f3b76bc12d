package redis

import (
	"github.com/kbukum/utilkit/errors"
)

// Result is the outcome of a KeyValueAccess operation.
//
// Value always holds something usable: the store's answer on success, or
// the operation's failure default otherwise. Found is false when the key or
// member does not exist and on failure. Err is nil on success and a
// classified *errors.AppError otherwise.
type Result[T any] struct {
	Value T
	Found bool
	Err   error
}

// OK reports whether the operation completed without error.
func (r Result[T]) OK() bool { return r.Err == nil }

// Unwrap returns Value and Err.
func (r Result[T]) Unwrap() (T, error) { return r.Value, r.Err }

// Or returns Value when the operation succeeded and found something,
// fallback otherwise.
func (r Result[T]) Or(fallback T) T {
	if r.Err != nil || !r.Found {
		return fallback
	}
	return r.Value
}

// IsAcquireFailure reports whether err means no connection could be leased.
func IsAcquireFailure(err error) bool {
	return errors.HasCode(err, errors.ErrCodeAcquisitionFailed)
}

// IsStoreFailure reports whether err was raised by the store while running
// a command, including command timeouts.
func IsStoreFailure(err error) bool {
	return errors.HasCode(err, errors.ErrCodeStoreFailed) || errors.HasCode(err, errors.ErrCodeTimeout)
}

// IsDecodeFailure reports whether a stored value could not be decoded.
func IsDecodeFailure(err error) bool {
	return errors.HasCode(err, errors.ErrCodeDecodeFailed)
}

// IsInvalidInput reports whether the call was rejected before reaching the
// store.
func IsInvalidInput(err error) bool {
	return errors.HasCode(err, errors.ErrCodeInvalidInput) || errors.HasCode(err, errors.ErrCodeFieldParseFailed)
}
