package redis

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	rendezvous "github.com/dgryski/go-rendezvous"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spaolacci/murmur3"

	"github.com/kbukum/utilkit/errors"
	"github.com/kbukum/utilkit/logger"
)

// ErrPoolClosed is the cause reported when a connection is requested from a
// closed pool.
var ErrPoolClosed = stderrors.New("redis: pool closed")

type shard struct {
	name     string
	endpoint ShardEndpoint
	client   *goredis.Client
}

// Pool owns one go-redis client per shard and routes keys to shards by
// rendezvous hashing. It is safe for concurrent use.
type Pool struct {
	shards  []*shard
	byName  map[string]*shard
	ring    *rendezvous.Rendezvous
	poolCfg PoolConfig
	log     *logger.Logger

	mu     sync.RWMutex
	closed bool
}

// Conn is a connection leased from one shard. Return it with Pool.Release.
type Conn struct {
	*goredis.Conn
	shard string
}

// Shard returns the name of the shard the connection belongs to.
func (c *Conn) Shard() string { return c.shard }

func hashKey(s string) uint64 {
	return murmur3.Sum64([]byte(s))
}

func shardName(i int) string {
	return "shard-" + strconv.Itoa(i)
}

// NewPool creates the per-shard clients described by cfg. cfg must already
// be defaulted and validated.
func NewPool(cfg *Config, log *logger.Logger) (*Pool, error) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	endpoints := cfg.Endpoints()
	if len(endpoints) == 0 {
		return nil, errors.Validation("redis: at least one shard is required")
	}

	p := &Pool{
		byName:  make(map[string]*shard, len(endpoints)),
		poolCfg: cfg.Pool(),
		log:     log,
	}
	names := make([]string, len(endpoints))
	for i, ep := range endpoints {
		s := &shard{
			name:     shardName(i),
			endpoint: ep,
			client:   goredis.NewClient(shardOptions(cfg, ep)),
		}
		p.shards = append(p.shards, s)
		p.byName[s.name] = s
		names[i] = s.name
	}
	p.ring = rendezvous.New(names, hashKey)

	log.Info("Redis pool created", map[string]interface{}{
		"shards":    len(endpoints),
		"addr":      endpoints[0].addr(),
		"db":        endpoints[0].DB,
		"pool_size": cfg.PoolSize,
		"max_wait":  cfg.MaxWait.String(),
	})
	return p, nil
}

func shardOptions(cfg *Config, ep ShardEndpoint) *goredis.Options {
	return &goredis.Options{
		Addr:            ep.addr(),
		Username:        cfg.Username,
		Password:        cfg.Password,
		DB:              ep.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		ConnMaxIdleTime: cfg.MaxIdle,
		PoolTimeout:     cfg.MaxWait,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		// one attempt per command
		MaxRetries: -1,
	}
}

func (ep ShardEndpoint) addr() string {
	return net.JoinHostPort(ep.Host, strconv.Itoa(ep.Port))
}

// ShardFor returns the name of the shard that owns key.
func (p *Pool) ShardFor(key string) string {
	return p.ring.Lookup(key)
}

// Shards returns the shard names in configuration order.
func (p *Pool) Shards() []string {
	out := make([]string, len(p.shards))
	for i, s := range p.shards {
		out[i] = s.name
	}
	return out
}

// Acquire leases a connection from the shard owning key. It fails when the
// pool is closed, ctx is done, or the connection does not answer a ping
// while TestOnBorrow is enabled.
func (p *Pool) Acquire(ctx context.Context, key string) (*Conn, error) {
	s := p.byName[p.ShardFor(key)]

	if err := ctx.Err(); err != nil {
		return nil, errors.AcquisitionFailed(s.name, err)
	}

	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return nil, errors.AcquisitionFailed(s.name, ErrPoolClosed)
	}

	conn := s.client.Conn()
	if p.poolCfg.TestOnBorrow {
		if err := conn.Ping(ctx).Err(); err != nil {
			_ = conn.Close()
			return nil, errors.AcquisitionFailed(s.name, err)
		}
	}
	return &Conn{Conn: conn, shard: s.name}, nil
}

// Release returns conn to its shard. A nil conn is ignored and release
// errors are logged, never returned.
func (p *Pool) Release(conn *Conn) {
	if conn == nil || conn.Conn == nil {
		return
	}
	if err := conn.Conn.Close(); err != nil && !stderrors.Is(err, goredis.ErrClosed) {
		p.log.Warn("Failed to release redis connection", map[string]interface{}{
			logger.FieldShard: conn.shard,
			logger.FieldError: err.Error(),
		})
	}
}

// Ping checks every shard and returns the joined failures.
func (p *Pool) Ping(ctx context.Context) error {
	var errs []error
	for _, s := range p.shards {
		if err := s.client.Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s (%s): %w", s.name, s.endpoint.addr(), err))
		}
	}
	return stderrors.Join(errs...)
}

// Stats returns go-redis pool statistics keyed by shard name.
func (p *Pool) Stats() map[string]*goredis.PoolStats {
	out := make(map[string]*goredis.PoolStats, len(p.shards))
	for _, s := range p.shards {
		out[s.name] = s.client.PoolStats()
	}
	return out
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

// Close closes every shard client. Safe to call multiple times.
func (p *Pool) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.log.Info("Closing Redis pool", map[string]interface{}{"shards": len(p.shards)})

	var errs []error
	for _, s := range p.shards {
		if err := s.client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return stderrors.Join(errs...)
}

// isAcquireError reports whether err came from obtaining a connection
// rather than from the command itself.
func isAcquireError(err error) bool {
	if stderrors.Is(err, goredis.ErrClosed) || stderrors.Is(err, ErrPoolClosed) {
		return true
	}
	var opErr *net.OpError
	if stderrors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return strings.Contains(err.Error(), "connection pool timeout")
}
