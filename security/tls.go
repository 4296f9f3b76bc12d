package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/kbukum/utilkit/errors"
)

var tlsVersions = map[string]uint16{
	"1.0": tls.VersionTLS10,
	"1.1": tls.VersionTLS11,
	"1.2": tls.VersionTLS12,
	"1.3": tls.VersionTLS13,
}

// TLSConfig holds client TLS settings loadable from configuration files.
type TLSConfig struct {
	// SkipVerify disables server certificate verification.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`

	// CAFile is a PEM bundle used instead of the system roots.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`

	// CertFile and KeyFile hold the client certificate for mutual TLS.
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile  string `yaml:"key_file" mapstructure:"key_file"`

	// ServerName overrides the name checked against the server certificate.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// MinVersion is "1.0" through "1.3". Empty means 1.2.
	MinVersion string `yaml:"min_version" mapstructure:"min_version"`
}

// Build returns the *tls.Config described by c, or nil when c is nil or
// empty.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if !c.IsEnabled() {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	minVersion := uint16(tls.VersionTLS12)
	if c.MinVersion != "" {
		minVersion = tlsVersions[c.MinVersion]
	}
	cfg := &tls.Config{
		InsecureSkipVerify: c.SkipVerify,
		ServerName:         c.ServerName,
		MinVersion:         minVersion,
	}

	if c.CAFile != "" {
		pem, err := os.ReadFile(c.CAFile)
		if err != nil {
			return nil, errors.InvalidInput("ca_file", "cannot be read").WithCause(err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, errors.InvalidInput("ca_file", "contains no PEM certificates")
		}
		cfg.RootCAs = pool
	}

	if c.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, errors.InvalidInput("cert_file", "cannot load key pair").WithCause(err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}

// Validate checks that the certificate pair is complete and the version is
// known.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile != "") != (c.KeyFile != "") {
		return errors.Validation("tls: cert_file and key_file must be set together")
	}
	if _, ok := tlsVersions[c.MinVersion]; c.MinVersion != "" && !ok {
		return errors.InvalidInput("min_version", fmt.Sprintf("unknown TLS version %q", c.MinVersion))
	}
	return nil
}

// IsEnabled reports whether any setting is present.
func (c *TLSConfig) IsEnabled() bool {
	if c == nil {
		return false
	}
	return c.SkipVerify || c.CAFile != "" || c.CertFile != "" || c.KeyFile != "" ||
		c.ServerName != "" || c.MinVersion != ""
}
