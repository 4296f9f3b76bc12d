// Package validation provides input validation for utilkit configuration
// and operation arguments.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    Addr string `mapstructure:"addr" validate:"required,hostname_port"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Required("key", key).
//	    Min("seconds", seconds, 1).
//	    Validate()
package validation
