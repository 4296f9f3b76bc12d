package redis

import (
	"context"
)

// SetAdd adds member to the set at key.
func (kv *KeyValueAccess) SetAdd(ctx context.Context, key, member string) Result[bool] {
	return run(ctx, kv, "sadd", key, false, func(ctx context.Context, c *Conn) (bool, bool, error) {
		if err := c.SAdd(ctx, key, member).Err(); err != nil {
			return false, false, err
		}
		return true, true, nil
	})
}

// SetIsMember reports whether member belongs to the set at key.
func (kv *KeyValueAccess) SetIsMember(ctx context.Context, key, member string) Result[bool] {
	return run(ctx, kv, "sismember", key, false, func(ctx context.Context, c *Conn) (bool, bool, error) {
		ok, err := c.SIsMember(ctx, key, member).Result()
		if err != nil {
			return false, false, err
		}
		return ok, ok, nil
	})
}

// SetMembers returns every member of the set at key in no particular order.
func (kv *KeyValueAccess) SetMembers(ctx context.Context, key string) Result[[]string] {
	return run(ctx, kv, "smembers", key, nil, func(ctx context.Context, c *Conn) ([]string, bool, error) {
		members, err := c.SMembers(ctx, key).Result()
		if err != nil {
			return nil, false, err
		}
		return members, len(members) > 0, nil
	})
}
