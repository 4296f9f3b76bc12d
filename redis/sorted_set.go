package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// ScoredMember is a sorted set member with its score.
type ScoredMember struct {
	Member string  `json:"member"`
	Score  float64 `json:"score"`
}

// SortedSetAdd adds member with score to the sorted set at key, updating the
// score of an existing member. Value is the number of new members added.
func (kv *KeyValueAccess) SortedSetAdd(ctx context.Context, key string, score int, member string) Result[int64] {
	return run(ctx, kv, "zadd", key, 0, func(ctx context.Context, c *Conn) (int64, bool, error) {
		n, err := c.ZAdd(ctx, key, goredis.Z{Score: float64(score), Member: member}).Result()
		if err != nil {
			return 0, false, err
		}
		return n, true, nil
	})
}

// SortedSetRevRange returns members ranked start..end from highest score to
// lowest. Negative indexes count from the lowest score.
func (kv *KeyValueAccess) SortedSetRevRange(ctx context.Context, key string, start, end int64) Result[[]string] {
	return run(ctx, kv, "zrevrange", key, nil, func(ctx context.Context, c *Conn) ([]string, bool, error) {
		members, err := c.ZRevRange(ctx, key, start, end).Result()
		if err != nil {
			return nil, false, err
		}
		return members, len(members) > 0, nil
	})
}

// SortedSetTopScore returns the member with the highest score. Found is
// false for an empty or absent set.
func (kv *KeyValueAccess) SortedSetTopScore(ctx context.Context, key string) Result[string] {
	return run(ctx, kv, "zrevrangebyscore", key, "", func(ctx context.Context, c *Conn) (string, bool, error) {
		members, err := c.ZRevRangeByScore(ctx, key, &goredis.ZRangeBy{
			Max:    "+inf",
			Min:    "-inf",
			Offset: 0,
			Count:  1,
		}).Result()
		if err != nil {
			return "", false, err
		}
		if len(members) == 0 {
			return "", false, nil
		}
		return members[0], true, nil
	})
}

// SortedSetRevRangeWithScores is SortedSetRevRange with each member's score.
func (kv *KeyValueAccess) SortedSetRevRangeWithScores(ctx context.Context, key string, start, end int64) Result[[]ScoredMember] {
	return run(ctx, kv, "zrevrange", key, nil, func(ctx context.Context, c *Conn) ([]ScoredMember, bool, error) {
		zs, err := c.ZRevRangeWithScores(ctx, key, start, end).Result()
		if err != nil {
			return nil, false, err
		}
		out := make([]ScoredMember, len(zs))
		for i, z := range zs {
			out[i] = ScoredMember{Member: fmt.Sprint(z.Member), Score: z.Score}
		}
		return out, len(out) > 0, nil
	})
}

// SortedSetIncrementScore adds delta to member's score, creating the member
// when absent. Value is the new score truncated to an int.
func (kv *KeyValueAccess) SortedSetIncrementScore(ctx context.Context, key string, delta int, member string) Result[int] {
	return run(ctx, kv, "zincrby", key, 0, func(ctx context.Context, c *Conn) (int, bool, error) {
		score, err := c.ZIncrBy(ctx, key, float64(delta), member).Result()
		if err != nil {
			return 0, false, err
		}
		return int(score), true, nil
	})
}

// SortedSetScore returns member's score truncated to an int. An absent
// member yields 0 with Found false.
func (kv *KeyValueAccess) SortedSetScore(ctx context.Context, key, member string) Result[int] {
	return run(ctx, kv, "zscore", key, 0, func(ctx context.Context, c *Conn) (int, bool, error) {
		score, err := c.ZScore(ctx, key, member).Result()
		if absent(err) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		return int(score), true, nil
	})
}
