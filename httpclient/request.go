package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is joined to BaseURL. Absolute http(s) URLs are used as given.
	Path string
	// Headers override the adapter's default headers.
	Headers map[string]string
	// Query is merged into the URL's query string.
	Query map[string]string
	// Body accepts url.Values (form encoded), io.Reader, []byte, string, or
	// any value to be JSON encoded.
	Body any
	// Auth overrides the adapter's auth for this request.
	Auth *AuthConfig
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError reports a 4xx or 5xx status.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Form converts params to url.Values, formatting each value with fmt rules.
// A nil map yields empty values.
func Form(params map[string]any) url.Values {
	form := make(url.Values, len(params))
	for k, v := range params {
		form.Add(k, formatValue(v))
	}
	return form
}

// newHTTPRequest resolves the URL and applies, in order, default
// headers, request headers, content type, request id and auth.
func (a *Adapter) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("encode body: %v", err))
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, a.resolve(req.Path), body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	h := httpReq.Header
	for _, set := range []map[string]string{a.cfg.Headers, req.Headers} {
		for k, v := range set {
			h.Set(k, v)
		}
	}
	if body != nil && contentType != "" && h.Get("Content-Type") == "" {
		h.Set("Content-Type", contentType)
	}
	if name := a.cfg.RequestIDHeader; name != "-" && h.Get(name) == "" {
		h.Set(name, uuid.NewString())
	}

	auth := a.cfg.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)
	return httpReq, nil
}

// resolve joins path onto the base URL unless it is already absolute.
func (a *Adapter) resolve(path string) string {
	if a.cfg.BaseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(a.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// encodeBody returns the body and the content type it implies. Readers
// and byte slices imply none.
func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case url.Values:
		return strings.NewReader(v.Encode()), "application/x-www-form-urlencoded", nil
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}
