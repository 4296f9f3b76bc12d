package redis

import (
	"context"
	"math"
	"time"

	"github.com/kbukum/utilkit/errors"
)

// SetString stores value at key without expiry.
func (kv *KeyValueAccess) SetString(ctx context.Context, key, value string) Result[bool] {
	return run(ctx, kv, "set", key, false, func(ctx context.Context, c *Conn) (bool, bool, error) {
		if err := c.Set(ctx, key, value, 0).Err(); err != nil {
			return false, false, err
		}
		return true, true, nil
	})
}

// GetString returns the string at key. Found is false when the key is absent.
func (kv *KeyValueAccess) GetString(ctx context.Context, key string) Result[string] {
	return run(ctx, kv, "get", key, "", func(ctx context.Context, c *Conn) (string, bool, error) {
		v, err := c.Get(ctx, key).Result()
		if absent(err) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		return v, true, nil
	})
}

// Delete removes key and returns the number of keys removed.
func (kv *KeyValueAccess) Delete(ctx context.Context, key string) Result[int64] {
	return run(ctx, kv, "del", key, 0, func(ctx context.Context, c *Conn) (int64, bool, error) {
		n, err := c.Del(ctx, key).Result()
		if err != nil {
			return 0, false, err
		}
		return n, n > 0, nil
	})
}

// maxExpireSeconds is the largest TTL a time.Duration can carry.
const maxExpireSeconds = math.MaxInt64 / int64(time.Second)

// Expire sets a time to live of seconds on key. Value is true whenever the
// command was accepted; Found reports whether the key existed.
func (kv *KeyValueAccess) Expire(ctx context.Context, key string, seconds int) Result[bool] {
	if seconds <= 0 {
		return reject(kv, "expire", key, false, errors.InvalidInput("seconds", "must be positive"))
	}
	if int64(seconds) > maxExpireSeconds {
		return reject(kv, "expire", key, false, errors.InvalidInput("seconds", "exceeds the maximum TTL"))
	}
	return run(ctx, kv, "expire", key, false, func(ctx context.Context, c *Conn) (bool, bool, error) {
		existed, err := c.Expire(ctx, key, time.Duration(seconds)*time.Second).Result()
		if err != nil {
			return false, false, err
		}
		return true, existed, nil
	})
}
