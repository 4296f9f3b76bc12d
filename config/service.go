package config

import (
	"github.com/kbukum/utilkit/logger"
	"github.com/kbukum/utilkit/validation"
)

// ServiceConfig is the base every utilkit config embeds with squash:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Redis redis.Config `yaml:"redis" mapstructure:"redis"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

func (c *ServiceConfig) GetServiceConfig() *ServiceConfig { return c }

// ApplyDefaults selects the development environment, which turns on
// Debug, and names the logger after the service. Embedding configs
// that override it must call it.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Debug = c.Debug || c.Environment == "development"
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the base fields and the nested logging section.
func (c *ServiceConfig) Validate() error {
	return validation.Validate(c)
}
