// Package logger provides structured logging for utilkit components
// using zerolog.
//
// Loggers are passed into components explicitly; the package-level global
// exists for wiring code (CLI, registry) that has no logger of its own.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("orders").WithComponent("redis")
//	log.Warn("store call failed", logger.ErrorFields("get", err))
package logger
