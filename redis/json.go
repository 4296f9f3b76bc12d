package redis

import (
	"context"

	"github.com/kbukum/utilkit/errors"
	"github.com/kbukum/utilkit/logger"
)

// SetJSON stores the JSON encoding of v at key.
func (kv *KeyValueAccess) SetJSON(ctx context.Context, key string, v any) Result[bool] {
	if key == "" {
		return reject(kv, "set", key, false, errors.InvalidInput("key", "must not be empty"))
	}
	data, err := kv.codec.Marshal(v)
	if err != nil {
		return reject(kv, "set", key, false, errors.EncodeFailed(err))
	}
	return kv.SetString(ctx, key, string(data))
}

// ListPushJSON appends the JSON encoding of v to the list at key.
func (kv *KeyValueAccess) ListPushJSON(ctx context.Context, key string, v any) Result[bool] {
	if key == "" {
		return reject(kv, "rpush", key, false, errors.InvalidInput("key", "must not be empty"))
	}
	data, err := kv.codec.Marshal(v)
	if err != nil {
		return reject(kv, "rpush", key, false, errors.EncodeFailed(err))
	}
	kv.log.Debug("Pushing JSON value", map[string]interface{}{
		logger.FieldKey: key,
		"value":         string(data),
	})
	return kv.ListPushRight(ctx, key, string(data))
}

// GetJSON decodes the JSON stored at key into a new T. Found is false when
// the key is absent; Value is nil on absence and on failure.
func GetJSON[T any](ctx context.Context, kv *KeyValueAccess, key string) Result[*T] {
	raw := kv.GetString(ctx, key)
	if raw.Err != nil || !raw.Found {
		return Result[*T]{Err: raw.Err}
	}
	out := new(T)
	if err := kv.codec.Unmarshal([]byte(raw.Value), out); err != nil {
		return reject[*T](kv, "get", key, nil, errors.DecodeFailed(key, err))
	}
	return Result[*T]{Value: out, Found: true}
}

// ListJSON decodes every element of the list at key, head first. Decoding
// stops at the first element that is not valid JSON for T; the elements
// decoded before it are kept in Value and the failure is reported in Err.
func ListJSON[T any](ctx context.Context, kv *KeyValueAccess, key string) Result[[]T] {
	raw := kv.ListRange(ctx, key, 0, -1)
	out := make([]T, 0, len(raw.Value))
	if raw.Err != nil {
		return Result[[]T]{Value: out, Err: raw.Err}
	}
	for i, s := range raw.Value {
		var item T
		if err := kv.codec.Unmarshal([]byte(s), &item); err != nil {
			return reject(kv, "lrange", key, out,
				errors.DecodeFailed(key, err).WithDetail("index", i))
		}
		out = append(out, item)
	}
	return Result[[]T]{Value: out, Found: len(out) > 0}
}
