package logger

import (
	"github.com/kbukum/utilkit/validation"
)

// Config is the logging section of a service config.
type Config struct {
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	Level       string `yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format      string `yaml:"format" mapstructure:"format" validate:"oneof=json console pretty"`
	Output      string `yaml:"output" mapstructure:"output" validate:"omitempty,oneof=stdout stderr"`
	NoColor     bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp   bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller      bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults fills an info-level console logger on stdout.
// Timestamps are always enabled.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	c.Timestamp = true
}

func (c *Config) Validate() error {
	return validation.Validate(c)
}
