package httpclient

import (
	"time"

	"github.com/kbukum/utilkit/validation"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultRequestIDHeader = "X-Request-ID"
)

// Config configures the HTTP adapter.
type Config struct {
	// Name identifies the adapter in logs and health reports.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout bounds a whole request including reading the body.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Auth is applied to every request unless the request overrides it.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`

	// TLS configures the transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// RequestIDHeader carries a generated UUID on every request that does
	// not already set it. "-" disables it.
	RequestIDHeader string `yaml:"request_id_header" mapstructure:"request_id_header"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "http"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RequestIDHeader == "" {
		c.RequestIDHeader = defaultRequestIDHeader
	}
}

// Validate checks struct tags, auth and TLS settings.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Auth.validate(); err != nil {
		return err
	}
	return c.TLS.Validate()
}
