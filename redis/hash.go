package redis

import (
	"context"
	"strings"

	"github.com/kbukum/utilkit/errors"
)

// ParseFields splits a comma-separated field list, trimming spaces and
// dropping empty entries.
func ParseFields(list string) ([]string, error) {
	var fields []string
	for _, f := range strings.Split(list, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil, errors.FieldParseFailed(list)
	}
	return fields, nil
}

// HashSetAll writes every field of values into the hash at key.
func (kv *KeyValueAccess) HashSetAll(ctx context.Context, key string, values map[string]string) Result[bool] {
	if len(values) == 0 {
		return reject(kv, "hset", key, false, errors.InvalidInput("values", "must not be empty"))
	}
	return run(ctx, kv, "hset", key, false, func(ctx context.Context, c *Conn) (bool, bool, error) {
		args := make([]interface{}, 0, len(values)*2)
		for f, v := range values {
			args = append(args, f, v)
		}
		if err := c.HSet(ctx, key, args...).Err(); err != nil {
			return false, false, err
		}
		return true, true, nil
	})
}

// HashGetMany reads fields from the hash at key. The result holds one
// single-entry map per requested field, in request order; a missing field
// maps to "".
func (kv *KeyValueAccess) HashGetMany(ctx context.Context, key string, fields []string) Result[[]map[string]string] {
	if len(fields) == 0 {
		return reject[[]map[string]string](kv, "hmget", key, nil, errors.FieldParseFailed(""))
	}
	return run(ctx, kv, "hmget", key, nil, func(ctx context.Context, c *Conn) ([]map[string]string, bool, error) {
		vals, err := c.HMGet(ctx, key, fields...).Result()
		if err != nil {
			return nil, false, err
		}
		out := make([]map[string]string, len(fields))
		found := false
		for i, f := range fields {
			s, ok := vals[i].(string)
			found = found || ok
			out[i] = map[string]string{f: s}
		}
		return out, found, nil
	})
}

// HashGetManyList is HashGetMany for a comma-separated field list.
func (kv *KeyValueAccess) HashGetManyList(ctx context.Context, key, list string) Result[[]map[string]string] {
	fields, err := ParseFields(list)
	if err != nil {
		return reject[[]map[string]string](kv, "hmget", key, nil, errors.FieldParseFailed(list))
	}
	return kv.HashGetMany(ctx, key, fields)
}

// HashGetAll returns every field of the hash at key. Value is an empty map
// when the hash is absent or the call fails.
func (kv *KeyValueAccess) HashGetAll(ctx context.Context, key string) Result[map[string]string] {
	return run(ctx, kv, "hgetall", key, map[string]string{}, func(ctx context.Context, c *Conn) (map[string]string, bool, error) {
		m, err := c.HGetAll(ctx, key).Result()
		if err != nil {
			return map[string]string{}, false, err
		}
		return m, len(m) > 0, nil
	})
}
