package redis

import (
	"context"
)

// ListLength returns the length of the list at key, 0 when absent.
func (kv *KeyValueAccess) ListLength(ctx context.Context, key string) Result[int64] {
	return run(ctx, kv, "llen", key, 0, func(ctx context.Context, c *Conn) (int64, bool, error) {
		n, err := c.LLen(ctx, key).Result()
		if err != nil {
			return 0, false, err
		}
		return n, n > 0, nil
	})
}

// ListPushRight appends value to the tail of the list at key.
func (kv *KeyValueAccess) ListPushRight(ctx context.Context, key, value string) Result[bool] {
	return run(ctx, kv, "rpush", key, false, func(ctx context.Context, c *Conn) (bool, bool, error) {
		if err := c.RPush(ctx, key, value).Err(); err != nil {
			return false, false, err
		}
		return true, true, nil
	})
}

// ListPopLeft removes and returns the head of the list at key. Found is
// false when the list is empty or absent.
func (kv *KeyValueAccess) ListPopLeft(ctx context.Context, key string) Result[string] {
	return run(ctx, kv, "lpop", key, "", func(ctx context.Context, c *Conn) (string, bool, error) {
		v, err := c.LPop(ctx, key).Result()
		if absent(err) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		return v, true, nil
	})
}

// ListRange returns the elements between start and stop inclusive. Negative
// indexes count from the tail.
func (kv *KeyValueAccess) ListRange(ctx context.Context, key string, start, stop int64) Result[[]string] {
	return run(ctx, kv, "lrange", key, nil, func(ctx context.Context, c *Conn) ([]string, bool, error) {
		vals, err := c.LRange(ctx, key, start, stop).Result()
		if err != nil {
			return nil, false, err
		}
		return vals, len(vals) > 0, nil
	})
}
