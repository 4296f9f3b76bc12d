package main

import (
	"fmt"

	"github.com/kbukum/utilkit/config"
	"github.com/kbukum/utilkit/httpclient"
	"github.com/kbukum/utilkit/observability"
	"github.com/kbukum/utilkit/redis"
)

const serviceName = "utilkit"

type appConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Redis   redis.Config               `yaml:"redis" mapstructure:"redis"`
	HTTP    httpclient.Config          `yaml:"http" mapstructure:"http"`
	Tracing observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
}

// ApplyDefaults sends logs to stderr so command output stays clean.
func (c *appConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Redis.ApplyDefaults()
	c.HTTP.ApplyDefaults()
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = c.Name
	}
}

func (c *appConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if c.Tracing.Enabled {
		if err := c.Tracing.Validate(); err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
	}
	return nil
}

func loadConfig(path, envFile string) (*appConfig, error) {
	opts := []config.Option{config.WithEnvPrefix("UTILKIT")}
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	var cfg appConfig
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
