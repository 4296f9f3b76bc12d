package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// TypedResponse wraps a response with a decoded body of type T.
type TypedResponse[T any] struct {
	StatusCode int
	Headers    map[string]string
	Data       T
}

// PostJSON posts params as a JSON object and decodes the response into T.
func PostJSON[T any](a *Adapter, ctx context.Context, target string, params map[string]any, headers map[string]string) (*TypedResponse[T], error) {
	return doTyped[T](a, ctx, http.MethodPost, target, jsonBody(params), headers)
}

// PostForm posts params form-encoded and decodes the response into T.
func PostForm[T any](a *Adapter, ctx context.Context, target string, params map[string]any, headers map[string]string) (*TypedResponse[T], error) {
	return doTyped[T](a, ctx, http.MethodPost, target, Form(params), headers)
}

// PatchJSON sends params as a JSON object with PATCH.
func PatchJSON[T any](a *Adapter, ctx context.Context, target string, params map[string]any, headers map[string]string) (*TypedResponse[T], error) {
	return doTyped[T](a, ctx, http.MethodPatch, target, jsonBody(params), headers)
}

// PatchForm sends params form-encoded with PATCH.
func PatchForm[T any](a *Adapter, ctx context.Context, target string, params map[string]any, headers map[string]string) (*TypedResponse[T], error) {
	return doTyped[T](a, ctx, http.MethodPatch, target, Form(params), headers)
}

// GetQuery sends GET target?k=v&... built from params.
func GetQuery[T any](a *Adapter, ctx context.Context, target string, params map[string]any, headers map[string]string) (*TypedResponse[T], error) {
	return doTyped[T](a, ctx, http.MethodGet, WithQuery(target, params), nil, headers)
}

// GetPath sends GET target/seg1/seg2/... built from segments.
func GetPath[T any](a *Adapter, ctx context.Context, target string, segments []any, headers map[string]string) (*TypedResponse[T], error) {
	return doTyped[T](a, ctx, http.MethodGet, WithPath(target, segments), nil, headers)
}

// DeleteQuery sends DELETE target?k=v&... built from params.
func DeleteQuery[T any](a *Adapter, ctx context.Context, target string, params map[string]any, headers map[string]string) (*TypedResponse[T], error) {
	return doTyped[T](a, ctx, http.MethodDelete, WithQuery(target, params), nil, headers)
}

// DeletePath sends DELETE target/seg1/seg2/... built from segments.
func DeletePath[T any](a *Adapter, ctx context.Context, target string, segments []any, headers map[string]string) (*TypedResponse[T], error) {
	return doTyped[T](a, ctx, http.MethodDelete, WithPath(target, segments), nil, headers)
}

// WithQuery appends params to target as a query string with keys in sorted
// order. Empty params leave target unchanged.
func WithQuery(target string, params map[string]any) string {
	if len(params) == 0 {
		return target
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(target)
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	for _, k := range keys {
		b.WriteString(sep)
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(formatValue(params[k])))
		sep = "&"
	}
	return b.String()
}

// WithPath appends one escaped "/segment" per element of segments.
func WithPath(target string, segments []any) string {
	var b strings.Builder
	b.WriteString(target)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(formatValue(s)))
	}
	return b.String()
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func jsonBody(params map[string]any) map[string]any {
	if params == nil {
		return map[string]any{}
	}
	return params
}

func doTyped[T any](a *Adapter, ctx context.Context, method, target string, body any, headers map[string]string) (*TypedResponse[T], error) {
	resp, err := a.Do(ctx, Request{
		Method:  method,
		Path:    target,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		// keep a decodable error body for the caller
		if resp != nil {
			var data T
			if jsonErr := json.Unmarshal(resp.Body, &data); jsonErr == nil {
				return &TypedResponse[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, err
			}
		}
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, NewDecodeError(resp.StatusCode, resp.Body, err)
		}
	}
	return &TypedResponse[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, nil
}
