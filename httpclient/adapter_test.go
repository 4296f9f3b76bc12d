package httpclient

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/utilkit/logger"
	"github.com/kbukum/utilkit/observability"
	"github.com/kbukum/utilkit/security"
	"github.com/kbukum/utilkit/security/tlstest"
)

func newTestAdapter(t *testing.T, cfg Config, opts ...Option) *Adapter {
	t.Helper()
	opts = append([]Option{WithLogger(logger.Nop())}, opts...)
	a, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{Auth: &AuthConfig{Type: AuthBearer}}); err == nil {
		t.Fatal("expected error for bearer auth without token")
	}
	if _, err := New(Config{TLS: &security.TLSConfig{CAFile: "/nonexistent/ca.pem"}}); err == nil {
		t.Fatal("expected error for unreadable CA file")
	}
}

func TestAdapter_Accessors(t *testing.T) {
	a := newTestAdapter(t, Config{Name: "billing", Timeout: 5 * time.Second})
	if a.Name() != "billing" {
		t.Errorf("Name() = %q", a.Name())
	}
	if a.Config().Timeout != 5*time.Second {
		t.Errorf("Config().Timeout = %v", a.Config().Timeout)
	}
	if a.Unwrap() == nil || a.Unwrap().Timeout != 5*time.Second {
		t.Error("Unwrap() should expose the configured *http.Client")
	}
}

func TestDo_HeadersAndBaseURL(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("X-Reply", "yes")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{
		BaseURL: srv.URL + "/api/",
		Headers: map[string]string{"X-Default": "d", "X-Override": "default"},
		Auth:    BearerAuth("tok"),
	})
	resp, err := a.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/users",
		Headers: map[string]string{"X-Override": "request"},
		Query:   map[string]string{"page": "2"},
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !resp.IsSuccess() || resp.IsError() || string(resp.Body) != "ok" || resp.Headers["X-Reply"] != "yes" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if got.URL.Path != "/api/users" || got.URL.Query().Get("page") != "2" {
		t.Errorf("request URL = %s", got.URL)
	}
	if got.Header.Get("X-Default") != "d" || got.Header.Get("X-Override") != "request" {
		t.Errorf("headers = %v", got.Header)
	}
	if got.Header.Get("Authorization") != "Bearer tok" {
		t.Errorf("Authorization = %q", got.Header.Get("Authorization"))
	}
	if _, err := uuid.Parse(got.Header.Get("X-Request-ID")); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID", got.Header.Get("X-Request-ID"))
	}
}

func TestDo_RequestIDHeader(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Trace"))
	}))
	defer srv.Close()
	ctx := context.Background()

	a := newTestAdapter(t, Config{BaseURL: srv.URL, RequestIDHeader: "X-Trace"})
	a.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	a.Do(ctx, Request{Method: http.MethodGet, Path: "/", Headers: map[string]string{"X-Trace": "fixed"}})
	if ids[0] == "" || ids[1] != "fixed" {
		t.Errorf("request ids = %v", ids)
	}

	var seen http.Header
	plain := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { seen = r.Header.Clone() }))
	defer plain.Close()
	disabled := newTestAdapter(t, Config{BaseURL: plain.URL, RequestIDHeader: "-"})
	disabled.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	if seen.Get("X-Request-ID") != "" || seen.Get("-") != "" {
		t.Errorf("request id should be disabled, headers = %v", seen)
	}
}

func TestDo_RequestAuthOverride(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{BaseURL: srv.URL, Auth: BearerAuth("default")})
	a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/", Auth: BearerAuth("override")})
	if auth != "Bearer override" {
		t.Errorf("Authorization = %q", auth)
	}
}

func TestDo_BodyEncoding(t *testing.T) {
	type captured struct {
		contentType string
		body        string
	}
	var last captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		last = captured{r.Header.Get("Content-Type"), string(b)}
	}))
	defer srv.Close()
	a := newTestAdapter(t, Config{BaseURL: srv.URL})

	tests := []struct {
		name        string
		body        any
		headers     map[string]string
		contentType string
		want        string
	}{
		{"json", map[string]any{"name": "alice"}, nil, "application/json", `{"name":"alice"}`},
		{"form", Form(map[string]any{"a": 1, "b": "x y"}), nil, "application/x-www-form-urlencoded", "a=1&b=x+y"},
		{"string", "hello", nil, "text/plain", "hello"},
		{"bytes", []byte("raw"), map[string]string{"Content-Type": "application/octet-stream"}, "application/octet-stream", "raw"},
		{"reader", strings.NewReader("stream"), nil, "", "stream"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: tc.body, Headers: tc.headers})
			if err != nil {
				t.Fatalf("Do() error = %v", err)
			}
			if last.contentType != tc.contentType || last.body != tc.want {
				t.Errorf("got %+v, want content type %q body %q", last, tc.contentType, tc.want)
			}
		})
	}
}

func TestDo_EncodeFailure(t *testing.T) {
	a := newTestAdapter(t, Config{})
	_, err := a.Do(context.Background(), Request{Method: http.MethodPost, Path: "http://127.0.0.1:1", Body: map[string]any{"c": make(chan int)}})
	var e *Error
	if !stderrors.As(err, &e) || e.Code != ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDo_StatusClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"down"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{BaseURL: srv.URL})
	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !IsServerError(err) || !IsRetryable(err) {
		t.Fatalf("expected retryable server error, got %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable || !resp.IsError() {
		t.Fatalf("expected the response alongside the error, got %+v", resp)
	}
	if string(resp.Body) != `{"error":"down"}` {
		t.Errorf("body = %q", resp.Body)
	}
}

func TestDo_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	a := newTestAdapter(t, Config{BaseURL: addr})
	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if resp != nil || !IsConnection(err) {
		t.Fatalf("expected connection error, got %v, %v", resp, err)
	}
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	a := newTestAdapter(t, Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	long := newTestAdapter(t, Config{BaseURL: srv.URL})
	if _, err := long.Do(ctx, Request{Method: http.MethodGet, Path: "/"}); !IsTimeout(err) {
		t.Fatalf("expected context deadline to classify as timeout, got %v", err)
	}
}

func TestDo_TLS(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	srv := tlstest.NewServer(t, certs, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("secure"))
	}))

	trusted := newTestAdapter(t, Config{BaseURL: srv.URL, TLS: &security.TLSConfig{CAFile: certs.CAFile}})
	resp, err := trusted.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err != nil || string(resp.Body) != "secure" {
		t.Fatalf("TLS request = %v, %v", resp, err)
	}

	untrusted := newTestAdapter(t, Config{BaseURL: srv.URL})
	if _, err := untrusted.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); !IsConnection(err) {
		t.Fatalf("expected certificate failure as connection error, got %v", err)
	}
}

func TestDo_LogsRedactedURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
	a := newTestAdapter(t, Config{BaseURL: srv.URL, Auth: APIKeyAuthQuery("s3cret", "key")}, WithLogger(log))
	if _, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/missing"}); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "HTTP request returned error status") || !strings.Contains(out, `"status":404`) {
		t.Errorf("expected error status log, got %q", out)
	}
	if strings.Contains(out, "s3cret") {
		t.Errorf("log leaked the API key: %q", out)
	}
}

func TestRedactURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://user:pw@example.com/a?key=secret", nil)
	if got := redactURL(req.URL); got != "http://example.com/a" {
		t.Errorf("redactURL() = %q", got)
	}
}

func TestDo_Tracing(t *testing.T) {
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	sr := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	}()

	var traceparent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{BaseURL: srv.URL})
	if _, err := a.Do(context.Background(), Request{Method: http.MethodPut, Path: "/kettle"}); err == nil {
		t.Fatal("expected error status")
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "HTTP PUT" || span.Status().Code != codes.Error {
		t.Errorf("span = %s %v", span.Name(), span.Status())
	}
	if traceparent == "" || !strings.Contains(traceparent, span.SpanContext().TraceID().String()) {
		t.Errorf("traceparent %q does not carry trace %s", traceparent, span.SpanContext().TraceID())
	}
	var status int64
	for _, kv := range span.Attributes() {
		if string(kv.Key) == observability.AttrHTTPStatus {
			status = kv.Value.AsInt64()
		}
	}
	if status != http.StatusTeapot {
		t.Errorf("status attribute = %d", status)
	}
}
