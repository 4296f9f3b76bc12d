package httpclient

import (
	"cmp"
	"net/http"

	"github.com/kbukum/utilkit/validation"
)

// AuthType selects how AuthConfig signs a request.
type AuthType string

const (
	AuthNone   AuthType = ""
	AuthBearer AuthType = "bearer"
	AuthBasic  AuthType = "basic"
	AuthAPIKey AuthType = "api_key"
	AuthCustom AuthType = "custom"
)

const defaultAPIKeyName = "X-API-Key"

// AuthConfig signs outgoing requests. Only the fields of the selected
// Type are read. Apply cannot come from a config file.
type AuthConfig struct {
	Type     AuthType            `yaml:"type" mapstructure:"type"`
	Token    string              `yaml:"token" mapstructure:"token"`
	Username string              `yaml:"username" mapstructure:"username"`
	Password string              `yaml:"password" mapstructure:"password"`
	Key      string              `yaml:"key" mapstructure:"key"`
	In       string              `yaml:"in" mapstructure:"in"`     // "header" (default) or "query"
	Name     string              `yaml:"name" mapstructure:"name"` // header or parameter carrying Key
	Apply    func(*http.Request) `yaml:"-" mapstructure:"-"`
}

func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

func apiKey(key, in, name string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: in, Name: name}
}

// APIKeyAuth sends key in the X-API-Key header.
func APIKeyAuth(key string) *AuthConfig { return apiKey(key, "header", defaultAPIKeyName) }

func APIKeyAuthHeader(key, headerName string) *AuthConfig { return apiKey(key, "header", headerName) }

func APIKeyAuthQuery(key, paramName string) *AuthConfig { return apiKey(key, "query", paramName) }

// CustomAuth calls fn on every request after the other headers are set.
func CustomAuth(fn func(*http.Request)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

func (a *AuthConfig) validate() error {
	if a == nil {
		return nil
	}
	v := validation.New()
	switch a.Type {
	case AuthNone:
	case AuthBearer:
		v.Required("auth.token", a.Token)
	case AuthBasic:
		v.Required("auth.username", a.Username)
	case AuthAPIKey:
		v.Required("auth.key", a.Key)
		v.Custom(a.In == "" || a.In == "header" || a.In == "query", "auth.in", "must be header or query")
	case AuthCustom:
		v.Custom(a.Apply != nil, "auth.apply", "is required")
	default:
		v.AddError("auth.type", "must be one of: bearer basic api_key custom")
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthBasic:
		req.SetBasicAuth(a.Username, a.Password)
	case AuthAPIKey:
		name := cmp.Or(a.Name, defaultAPIKeyName)
		if a.In == "query" {
			q := req.URL.Query()
			q.Set(name, a.Key)
			req.URL.RawQuery = q.Encode()
		} else {
			req.Header.Set(name, a.Key)
		}
	case AuthCustom:
		if a.Apply != nil {
			a.Apply(req)
		}
	}
}
