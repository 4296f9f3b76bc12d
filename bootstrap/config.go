package bootstrap

import (
	"github.com/kbukum/utilkit/config"
)

// Config is the constraint for application configuration types. Any struct
// embedding config.ServiceConfig satisfies it through promoted methods.
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Redis redis.Config `yaml:"redis" mapstructure:"redis"`
//	}
//
//	app, err := bootstrap.NewApp(&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
