// Package component defines the lifecycle contract shared by utilkit
// infrastructure pieces (the Redis pool, the HTTP adapter) and a registry
// that starts them in order and stops them in reverse.
package component
