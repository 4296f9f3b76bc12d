package logger

import "time"

// Field keys shared by every utilkit component.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldKey       = "key"
	FieldShard     = "shard"
	FieldMethod    = "method"
	FieldURL       = "url"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields pairs up alternating keys and values. Non-string keys and a
// trailing key without a value are skipped.
//
//	log.Warn("store call failed", logger.Fields(logger.FieldKey, key, logger.FieldShard, shard))
func Fields(kvs ...interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(kvs)/2)
	for i := 1; i < len(kvs); i += 2 {
		if k, ok := kvs[i-1].(string); ok {
			out[k] = kvs[i]
		}
	}
	return out
}

// ErrorFields describes a failed operation.
func ErrorFields(op string, err error) map[string]interface{} {
	return MergeWithError(Fields(FieldOperation, op), err)
}

// DurationFields describes a timed operation in milliseconds.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return Fields(FieldOperation, op, FieldDuration, d.Milliseconds())
}

// MergeWithError sets the error field on fields, allocating when nil.
// A nil err leaves fields untouched.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	if err != nil {
		fields[FieldError] = err.Error()
	}
	return fields
}
