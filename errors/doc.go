// Package errors provides the structured error type shared by utilkit
// components: a machine-readable code, a human-readable message, retryable
// detection and an optional cause.
package errors
