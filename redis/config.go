package redis

import (
	"fmt"
	"time"

	"github.com/kbukum/utilkit/validation"
)

// Defaults for the pool, matching the legacy sharded pool configuration.
const (
	DefaultHost         = "localhost"
	DefaultPort         = 6379
	DefaultShardCount   = 3
	DefaultMaxIdle      = 60 * time.Second
	DefaultMaxWait      = 20 * time.Second
	DefaultPoolSize     = 10
	DefaultDialTimeout  = 5 * time.Second
	DefaultReadTimeout  = 3 * time.Second
	DefaultWriteTimeout = 3 * time.Second
	DefaultMaxDB        = 15
)

// ShardEndpoint identifies one logical shard.
type ShardEndpoint struct {
	Host string `yaml:"host" mapstructure:"host" validate:"required"`
	Port int    `yaml:"port" mapstructure:"port" validate:"min=1,max=65535"`
	DB   int    `yaml:"db" mapstructure:"db" validate:"gte=0"`
}

// PoolConfig is the per-shard pool tuning applied once at construction.
type PoolConfig struct {
	// MaxIdle is how long a connection may stay idle before it is closed.
	MaxIdle time.Duration
	// MaxWait bounds how long an operation waits for a free connection.
	MaxWait time.Duration
	// TestOnBorrow pings every leased connection before handing it out.
	TestOnBorrow bool
}

// Config holds KeyValueAccess configuration.
type Config struct {
	// Name is the component name used in logs and health reports.
	Name string `yaml:"name" mapstructure:"name"`

	// Host, Port and DB describe the single endpoint every default shard
	// points at.
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	DB   int    `yaml:"db" mapstructure:"db"`

	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`

	// ShardCount is how many copies of Host/Port/DB form the shard ring
	// when Shards is empty.
	ShardCount int `yaml:"shard_count" mapstructure:"shard_count" validate:"gte=0"`

	// Shards overrides the default layout with explicit endpoints.
	Shards []ShardEndpoint `yaml:"shards" mapstructure:"shards" validate:"dive"`

	// MaxDB is the highest database index the server accepts.
	MaxDB int `yaml:"max_db" mapstructure:"max_db"`

	// MaxIdle is the maximum time a connection may sit idle (e.g. "60s").
	MaxIdle time.Duration `yaml:"max_idle" mapstructure:"max_idle"`

	// MaxWait is how long to wait for a connection from the pool (e.g. "20s").
	MaxWait time.Duration `yaml:"max_wait" mapstructure:"max_wait"`

	// TestOnBorrow pings each connection when it is leased.
	TestOnBorrow bool `yaml:"test_on_borrow" mapstructure:"test_on_borrow"`

	// PoolSize is the maximum number of connections per shard.
	PoolSize int `yaml:"pool_size" mapstructure:"pool_size" validate:"gte=0"`

	// MinIdleConns is the minimum number of idle connections per shard.
	MinIdleConns int `yaml:"min_idle_conns" mapstructure:"min_idle_conns" validate:"gte=0"`

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "redis"
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ShardCount <= 0 {
		c.ShardCount = DefaultShardCount
	}
	if c.MaxDB <= 0 {
		c.MaxDB = DefaultMaxDB
	}
	if c.MaxIdle <= 0 {
		c.MaxIdle = DefaultMaxIdle
	}
	if c.MaxWait <= 0 {
		c.MaxWait = DefaultMaxWait
	}
	if c.PoolSize <= 0 {
		c.PoolSize = DefaultPoolSize
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
}

// Validate checks struct tags and that every shard selects a database the
// server can serve. An out-of-range database fails instead of silently
// falling back to database 0.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New()
	for i, ep := range c.Endpoints() {
		v.Range(fmt.Sprintf("shards[%d].db", i), ep.DB, 0, c.MaxDB)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Endpoints returns the shard layout: the explicit Shards, or ShardCount
// identical copies of Host/Port/DB.
func (c *Config) Endpoints() []ShardEndpoint {
	if len(c.Shards) > 0 {
		out := make([]ShardEndpoint, len(c.Shards))
		copy(out, c.Shards)
		return out
	}
	out := make([]ShardEndpoint, c.ShardCount)
	for i := range out {
		out[i] = ShardEndpoint{Host: c.Host, Port: c.Port, DB: c.DB}
	}
	return out
}

// Pool returns the pool tuning derived from the config.
func (c *Config) Pool() PoolConfig {
	return PoolConfig{
		MaxIdle:      c.MaxIdle,
		MaxWait:      c.MaxWait,
		TestOnBorrow: c.TestOnBorrow,
	}
}
