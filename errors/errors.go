package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
)

// AppError carries a code, a message for people and the cause, if any.
// Retryable follows IsRetryableCode unless set otherwise.
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
	Cause     error          `json:"-"`
}

// Error renders "CODE: message", followed by the cause when present.
func (e *AppError) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges details into e.Details.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	maps.Copy(e.Details, details)
	return e
}

func (e *AppError) WithDetail(key string, value any) *AppError {
	return e.WithDetails(map[string]any{key: value})
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Retryable: IsRetryableCode(code)}
}

// about builds an error whose Details holds one key.
func about(code ErrorCode, message, key string, value any) *AppError {
	return New(code, message).WithDetail(key, value)
}

// AcquisitionFailed means no connection to shard could be leased.
func AcquisitionFailed(shard string, cause error) *AppError {
	return about(ErrCodeAcquisitionFailed, fmt.Sprintf("Unable to lease a connection for %s.", shard), "shard", shard).WithCause(cause)
}

// StoreFailed means the store rejected operation.
func StoreFailed(operation string, cause error) *AppError {
	return about(ErrCodeStoreFailed, fmt.Sprintf("Store operation %s failed.", operation), "operation", operation).WithCause(cause)
}

func Timeout(operation string, cause error) *AppError {
	return about(ErrCodeTimeout, "The operation took too long.", "operation", operation).WithCause(cause)
}

func ServiceUnavailable(service string) *AppError {
	return about(ErrCodeServiceUnavailable, fmt.Sprintf("The %s is unavailable.", service), "service", service)
}

// DecodeFailed means the text stored at key is not JSON for the
// requested type.
func DecodeFailed(key string, cause error) *AppError {
	return about(ErrCodeDecodeFailed, fmt.Sprintf("Value at %q is not valid JSON for the target type.", key), "key", key).WithCause(cause)
}

func EncodeFailed(cause error) *AppError {
	return New(ErrCodeEncodeFailed, "Value could not be encoded.").WithCause(cause)
}

// FieldParseFailed means input held no field names.
func FieldParseFailed(input string) *AppError {
	return about(ErrCodeFieldParseFailed, fmt.Sprintf("No field names in %q.", input), "input", input)
}

// InvalidInput rejects an argument. An empty field leaves the message
// unqualified.
func InvalidInput(field, reason string) *AppError {
	if field == "" {
		return New(ErrCodeInvalidInput, "Invalid input: "+reason)
	}
	return about(ErrCodeInvalidInput, fmt.Sprintf("Invalid input: %s %s", field, reason), "field", field)
}

// Validation carries an already formatted list of field failures.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

func MissingField(field string) *AppError {
	return about(ErrCodeMissingField, "Missing required field: "+field, "field", field)
}

func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.").WithCause(cause)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// HasCode reports whether the first AppError in err's chain has code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// Wrap returns the AppError in err's chain, or err as INTERNAL_ERROR.
// Wrap(nil) is nil.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
