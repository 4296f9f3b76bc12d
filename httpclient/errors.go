package httpclient

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/kbukum/utilkit/errors"
)

// ErrorCode classifies an HTTP failure.
type ErrorCode int

const (
	ErrCodeTimeout    ErrorCode = iota // deadline or client timeout
	ErrCodeConnection                  // refused, DNS, TLS, truncated body
	ErrCodeAuth                        // 401, 403
	ErrCodeNotFound                    // 404
	ErrCodeRateLimit                   // 429
	ErrCodeValidation                  // other 4xx, or a request that could not be built
	ErrCodeServer                      // 5xx and unfollowed 1xx/3xx
	ErrCodeDecode                      // 2xx body not decodable into the target
)

var codeNames = [...]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeValidation: "validation",
	ErrCodeServer:     "server",
	ErrCodeDecode:     "decode",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return "unknown"
	}
	return codeNames[c]
}

// Error is a classified HTTP failure. StatusCode and Body are zero for
// transport failures.
type Error struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	Retryable  bool
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// AppError maps e onto the shared error taxonomy.
func (e *Error) AppError() *errors.AppError {
	var appErr *errors.AppError
	switch e.Code {
	case ErrCodeTimeout:
		appErr = errors.Timeout("http", e)
	case ErrCodeConnection, ErrCodeServer, ErrCodeRateLimit:
		appErr = errors.ServiceUnavailable("http").WithCause(e)
	case ErrCodeDecode:
		appErr = errors.DecodeFailed("response", e)
	case ErrCodeNotFound, ErrCodeAuth, ErrCodeValidation:
		appErr = errors.InvalidInput("", e.Message).WithCause(e)
	default:
		appErr = errors.Internal(e)
	}
	if e.StatusCode > 0 {
		appErr.WithDetail("status", e.StatusCode)
	}
	return appErr
}

func transportError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Retryable: true, Err: err}
}

func NewTimeoutError(err error) *Error { return transportError(ErrCodeTimeout, err) }

func NewConnectionError(err error) *Error { return transportError(ErrCodeConnection, err) }

// NewValidationError rejects a request before it is sent.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// NewDecodeError keeps the undecodable 2xx body.
func NewDecodeError(statusCode int, body []byte, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeDecode,
		Message:    fmt.Sprintf("decode response: %v", err),
		Body:       body,
		Err:        err,
	}
}

// statusCode maps a non-2xx status to its code and retryability.
func statusCode(status int) (ErrorCode, bool) {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrCodeAuth, false
	case status == http.StatusNotFound:
		return ErrCodeNotFound, false
	case status == http.StatusTooManyRequests:
		return ErrCodeRateLimit, true
	case status >= 400 && status < 500:
		return ErrCodeValidation, false
	case status >= 500:
		return ErrCodeServer, true
	}
	return ErrCodeServer, false
}

// ClassifyStatusCode is nil for 2xx. Otherwise the error keeps body so
// callers can decode an error payload.
func ClassifyStatusCode(status int, body []byte) *Error {
	if status >= 200 && status < 300 {
		return nil
	}
	code, retryable := statusCode(status)
	return &Error{
		StatusCode: status,
		Code:       code,
		Message:    fmt.Sprintf("HTTP %d %s", status, http.StatusText(status)),
		Retryable:  retryable,
		Body:       body,
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Code == code
}

func IsTimeout(err error) bool     { return hasCode(err, ErrCodeTimeout) }
func IsConnection(err error) bool  { return hasCode(err, ErrCodeConnection) }
func IsAuth(err error) bool        { return hasCode(err, ErrCodeAuth) }
func IsNotFound(err error) bool    { return hasCode(err, ErrCodeNotFound) }
func IsRateLimit(err error) bool   { return hasCode(err, ErrCodeRateLimit) }
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }
func IsDecode(err error) bool      { return hasCode(err, ErrCodeDecode) }

// IsRetryable reports whether sending the same request again may succeed.
func IsRetryable(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Retryable
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if stderrors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
