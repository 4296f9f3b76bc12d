// Package redis provides KeyValueAccess, a typed Redis helper over a
// sharded go-redis connection pool.
//
// The pool holds one client per shard. Each key is routed to a shard by
// rendezvous hashing and every operation leases a single connection for
// the duration of its commands. By default the pool has three shards that
// all point at the same host, port and database.
//
// Operations never panic and never leave the caller without a value. Each
// returns a Result whose Value is the store's answer or the operation's
// failure default, with the cause in Err:
//
//	kv, err := redis.Init("localhost", 6379, 0, log)
//	if err != nil {
//	    return err
//	}
//	defer kv.Close()
//
//	kv.SortedSetAdd(ctx, "lb", 10, "alice")
//	top := kv.SortedSetTopScore(ctx, "lb").Value
//
// JSON helpers are generic functions:
//
//	user := redis.GetJSON[User](ctx, kv, "user:1")
//	if user.Found {
//	    ...
//	}
//
// # Lifecycle
//
// Component wraps KeyValueAccess for component.Registry: Start builds and
// pings the pool, Stop closes it and Health pings every shard.
//
// # Typed Store
//
// TypedStore provides prefixed JSON load/save/delete with an optional TTL:
//
//	sessions := redis.NewTypedStore[Session](kv, "sessions")
//	err := sessions.Save(ctx, id, &s, 30*time.Minute)
package redis
