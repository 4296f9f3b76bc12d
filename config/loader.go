package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/kbukum/utilkit/logger"
)

type loadOptions struct {
	fs        FileSystem
	sources   Sources
	envPrefix string
}

// Option adjusts LoadConfig.
type Option func(*loadOptions)

func WithFileSystem(fs FileSystem) Option {
	return func(o *loadOptions) { o.fs = fs }
}

// WithConfigFile skips the search for a YAML file.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) { o.sources.ConfigFile = path }
}

// WithEnvFile skips the search for a .env file.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.sources.EnvFile = path }
}

// WithEnvPrefix sets the prefix of overriding variables. The default is
// the upper-cased service name with dashes turned into underscores.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) { o.envPrefix = prefix }
}

// Defaulter fills zero values after loading.
type Defaulter interface{ ApplyDefaults() }

// Validator rejects a loaded config.
type Validator interface{ Validate() error }

// LoadConfig decodes the YAML file, then values from the .env file and
// prefixed environment variables, into cfg. A missing file is not an
// error. ApplyDefaults and Validate run afterwards when cfg has them.
func LoadConfig(serviceName string, cfg any, opts ...Option) error {
	o := loadOptions{fs: osFS{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.envPrefix == "" {
		o.envPrefix = strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_"))
	}

	src := Locate(o.fs, serviceName, o.sources)
	if err := decode(cfg, src, o); err != nil {
		return fmt.Errorf("config %s: %w", serviceName, err)
	}

	if d, ok := cfg.(Defaulter); ok {
		d.ApplyDefaults()
	}
	if v, ok := cfg.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid config for service %s: %w", serviceName, err)
		}
	}
	return nil
}

func decode(cfg any, src Sources, o loadOptions) error {
	v := viper.New()

	if src.ConfigFile != "" && o.fs.Exists(src.ConfigFile) {
		v.SetConfigFile(src.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", src.ConfigFile, err)
		}
	}
	if src.EnvFile != "" && o.fs.Exists(src.EnvFile) {
		if err := o.fs.LoadEnv(src.EnvFile); err != nil {
			logger.WithComponent("config").Warn("env file not loaded",
				logger.MergeWithError(logger.Fields("path", src.EnvFile), err))
		}
	}

	overrideFromEnv(v, o.envPrefix, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// overrideFromEnv sets PREFIX_* variables on every key they could name.
func overrideFromEnv(v *viper.Viper, prefix string, environ []string) {
	p := strings.ToUpper(prefix) + "_"
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		rest, ok := strings.CutPrefix(name, p)
		if !ok {
			continue
		}
		for _, key := range keyCandidates(rest) {
			v.Set(key, value)
		}
	}
}

// keyCandidates lists the config keys an underscored name may address,
// since an underscore can be either a nesting dot or part of a key:
//
//	REDIS_POOL_SIZE -> redis_pool_size, redis.pool.size, redis.pool_size
func keyCandidates(name string) []string {
	flat := strings.ToLower(name)
	parts := strings.Split(flat, "_")
	out := []string{flat}
	if len(parts) == 1 {
		return out
	}
	out = append(out, strings.Join(parts, "."))
	for i := 1; i < len(parts); i++ {
		key := strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_")
		if !slices.Contains(out, key) {
			out = append(out, key)
		}
	}
	return out
}
