package errors

// ErrorCode identifies a failure class for callers and logs.
type ErrorCode string

const (
	ErrCodeAcquisitionFailed  ErrorCode = "CONNECTION_ACQUISITION_FAILED" // no pooled connection within the wait budget
	ErrCodeStoreFailed        ErrorCode = "STORE_OPERATION_FAILED"        // the store answered with an error
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	ErrCodeDecodeFailed ErrorCode = "DECODE_FAILED" // stored text does not fit the target type
	ErrCodeEncodeFailed ErrorCode = "ENCODE_FAILED"

	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeFieldParseFailed ErrorCode = "FIELD_PARSE_FAILED" // a comma-separated field list named nothing
	ErrCodeMissingField     ErrorCode = "MISSING_FIELD"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// IsRetryableCode reports whether a retry of the same call may succeed.
// Only transport and availability failures qualify.
func IsRetryableCode(code ErrorCode) bool {
	switch code {
	case ErrCodeAcquisitionFailed, ErrCodeStoreFailed, ErrCodeTimeout, ErrCodeServiceUnavailable:
		return true
	}
	return false
}
