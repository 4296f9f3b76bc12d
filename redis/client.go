package redis

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/utilkit/errors"
	"github.com/kbukum/utilkit/logger"
	"github.com/kbukum/utilkit/observability"
)

// KeyValueAccess runs typed Redis operations over a sharded Pool.
//
// Every operation leases one connection for the key's shard, runs its
// commands and releases the connection before returning. Failures are
// logged and returned as the operation's default value plus a classified
// error.
type KeyValueAccess struct {
	pool  *Pool
	codec Codec
	log   *logger.Logger
	cfg   Config
}

// Option configures a KeyValueAccess.
type Option func(*KeyValueAccess)

// WithCodec replaces the JSON codec used by the JSON operations.
func WithCodec(c Codec) Option {
	return func(kv *KeyValueAccess) {
		if c != nil {
			kv.codec = c
		}
	}
}

// New validates cfg and builds the shard pool.
func New(cfg Config, log *logger.Logger, opts ...Option) (*KeyValueAccess, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("redis config: %w", err)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent(cfg.Name)

	pool, err := NewPool(&cfg, log)
	if err != nil {
		return nil, err
	}

	kv := &KeyValueAccess{
		pool:  pool,
		codec: DefaultCodec,
		log:   log,
		cfg:   cfg,
	}
	for _, opt := range opts {
		opt(kv)
	}
	return kv, nil
}

// Init builds a KeyValueAccess with the default three-shard layout, every
// shard pointing at host:port and selecting db.
func Init(host string, port, db int, log *logger.Logger, opts ...Option) (*KeyValueAccess, error) {
	return New(Config{Host: host, Port: port, DB: db}, log, opts...)
}

// Pool returns the underlying shard pool.
func (kv *KeyValueAccess) Pool() *Pool { return kv.pool }

// Config returns the effective configuration.
func (kv *KeyValueAccess) Config() Config { return kv.cfg }

// Ping checks every shard.
func (kv *KeyValueAccess) Ping(ctx context.Context) error { return kv.pool.Ping(ctx) }

// Close shuts the pool down. Operations issued afterwards fail with an
// acquisition error.
func (kv *KeyValueAccess) Close() error {
	if kv == nil {
		return nil
	}
	return kv.pool.Close()
}

// run leases a connection for key, invokes fn and converts any failure into
// def plus a classified error. Each call with a key is traced as span
// "redis.<op>".
func run[T any](ctx context.Context, kv *KeyValueAccess, op, key string, def T,
	fn func(ctx context.Context, c *Conn) (T, bool, error)) (res Result[T]) {
	if key == "" {
		return reject(kv, op, key, def, errors.InvalidInput("key", "must not be empty"))
	}

	ctx, span := observability.StartSpan(ctx, "redis."+op,
		attribute.String(observability.AttrDBSystem, "redis"),
		attribute.String(observability.AttrDBOperation, op),
		attribute.String(observability.AttrRedisShard, kv.pool.ShardFor(key)),
	)
	defer func() { observability.EndSpan(span, res.Err) }()

	conn, err := kv.pool.Acquire(ctx, key)
	if err != nil {
		return failed(kv, op, key, kv.pool.ShardFor(key), def, err)
	}
	defer kv.pool.Release(conn)

	start := time.Now()
	val, found, err := fn(ctx, conn)
	if err != nil {
		return failed(kv, op, key, conn.Shard(), def, classify(op, conn.Shard(), err))
	}
	fields := logger.DurationFields(op, time.Since(start))
	fields[logger.FieldKey] = key
	fields[logger.FieldShard] = conn.Shard()
	kv.log.Debug("Redis operation completed", fields)
	return Result[T]{Value: val, Found: found}
}

// reject returns def for a call refused before any connection was leased.
func reject[T any](kv *KeyValueAccess, op, key string, def T, err *errors.AppError) Result[T] {
	return failed(kv, op, key, "", def, err)
}

func failed[T any](kv *KeyValueAccess, op, key, shard string, def T, err error) Result[T] {
	fields := map[string]interface{}{
		logger.FieldOperation: op,
		logger.FieldKey:       key,
	}
	if shard != "" {
		fields[logger.FieldShard] = shard
	}
	kv.log.Warn("Redis operation failed", logger.MergeWithError(fields, err))
	return Result[T]{Value: def, Err: err}
}

func classify(op, shard string, err error) error {
	if errors.IsAppError(err) {
		return err
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Timeout(op, err)
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.Timeout(op, err)
	}
	if isAcquireError(err) {
		return errors.AcquisitionFailed(shard, err)
	}
	return errors.StoreFailed(op, err)
}

// absent reports whether err is the store's "no such key" reply.
func absent(err error) bool {
	return stderrors.Is(err, goredis.Nil)
}
