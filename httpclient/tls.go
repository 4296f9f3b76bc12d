package httpclient

import "github.com/kbukum/utilkit/security"

// TLSConfig is the shared transport TLS configuration.
type TLSConfig = security.TLSConfig
