package redis

import (
	"context"
	"math"
	"time"
)

// TypedStore is a key-prefixed view over KeyValueAccess holding JSON
// values of type C.
type TypedStore[C any] struct {
	kv        *KeyValueAccess
	keyPrefix string
}

// NewTypedStore creates a TypedStore. Keys are stored as prefix:key, or as
// key when prefix is empty.
func NewTypedStore[C any](kv *KeyValueAccess, keyPrefix string) *TypedStore[C] {
	return &TypedStore[C]{
		kv:        kv,
		keyPrefix: keyPrefix,
	}
}

func (s *TypedStore[C]) fullKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + ":" + key
}

// Load decodes the value at key. It returns (nil, nil) when the key does not
// exist.
func (s *TypedStore[C]) Load(ctx context.Context, key string) (*C, error) {
	res := GetJSON[C](ctx, s.kv, s.fullKey(key))
	return res.Value, res.Err
}

// Save stores val at key. A positive ttl is applied with second precision,
// rounded up; zero keeps the value until deleted.
func (s *TypedStore[C]) Save(ctx context.Context, key string, val *C, ttl time.Duration) error {
	full := s.fullKey(key)
	if res := s.kv.SetJSON(ctx, full, val); res.Err != nil {
		return res.Err
	}
	if ttl <= 0 {
		return nil
	}
	seconds := int(math.Ceil(ttl.Seconds()))
	return s.kv.Expire(ctx, full, seconds).Err
}

// Delete removes the value at key.
func (s *TypedStore[C]) Delete(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, s.fullKey(key)).Err
}
