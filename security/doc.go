// Package security holds the TLS settings shared by utilkit transports.
//
//	cfg := security.TLSConfig{
//	    CAFile:     "/etc/ssl/internal-ca.pem",
//	    MinVersion: "1.3",
//	}
//	tlsConfig, err := cfg.Build()
//
// Build returns nil when nothing is configured, so callers can assign the
// result to a transport unconditionally.
package security
