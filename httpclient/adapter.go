package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"github.com/kbukum/utilkit/logger"
	"github.com/kbukum/utilkit/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Adapter sends single-attempt HTTP requests with the base URL, default
// headers, auth and TLS of its Config.
type Adapter struct {
	client *http.Client
	cfg    Config
	log    *logger.Logger
}

// Option adjusts New.
type Option func(*Adapter)

// WithLogger sets the request logger. Nil keeps the global logger.
func WithLogger(log *logger.Logger) Option {
	return func(a *Adapter) {
		if log != nil {
			a.log = log
		}
	}
}

// WithTransport replaces the transport, and with it the TLS settings
// from Config.
func WithTransport(rt http.RoundTripper) Option {
	return func(a *Adapter) {
		if rt != nil {
			a.client.Transport = rt
		}
	}
}

// New builds an Adapter from cfg after applying defaults and validating it.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	a := &Adapter{
		client: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		cfg:    cfg,
		log:    logger.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithComponent(cfg.Name)
	return a, nil
}

// Name is the configured adapter name.
func (a *Adapter) Name() string { return a.cfg.Name }

// Config is the configuration after defaults.
func (a *Adapter) Config() Config { return a.cfg }

// Unwrap exposes the underlying *http.Client.
func (a *Adapter) Unwrap() *http.Client { return a.client }

// Close drops idle keep-alive connections.
func (a *Adapter) Close(_ context.Context) error {
	a.client.CloseIdleConnections()
	return nil
}

// Do sends req and reads the full body. A non-2xx status yields the
// response together with a classified *Error. Each call is a client span
// "HTTP <method>" whose context travels in the traceparent header.
func (a *Adapter) Do(ctx context.Context, req Request) (resp *Response, err error) {
	httpReq, err := a.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	target := redactURL(httpReq.URL)
	fields := logger.Fields(logger.FieldMethod, httpReq.Method, logger.FieldURL, target)
	attrs := []attribute.KeyValue{
		attribute.String(observability.AttrHTTPMethod, httpReq.Method),
		attribute.String(observability.AttrURL, target),
	}
	if id := httpReq.Header.Get(a.cfg.RequestIDHeader); id != "" {
		fields["request_id"] = id
		attrs = append(attrs, attribute.String(observability.AttrRequestID, id))
	}

	ctx, span := observability.StartSpan(ctx, "HTTP "+httpReq.Method, attrs...)
	defer func() {
		if resp != nil {
			span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, resp.StatusCode))
		}
		observability.EndSpan(span, err)
	}()
	httpReq = httpReq.WithContext(ctx)
	observability.InjectHeaders(ctx, propagation.HeaderCarrier(httpReq.Header))

	began := time.Now()
	resp, err = a.roundTrip(ctx, httpReq)
	if err != nil {
		a.log.Warn("HTTP request failed", logger.MergeWithError(fields, err))
		return nil, err
	}
	fields[logger.FieldStatus] = resp.StatusCode
	fields[logger.FieldDuration] = time.Since(began).Milliseconds()

	if statusErr := ClassifyStatusCode(resp.StatusCode, resp.Body); statusErr != nil {
		a.log.Warn("HTTP request returned error status", fields)
		return resp, statusErr
	}
	a.log.Debug("HTTP request completed", fields)
	return resp, nil
}

// roundTrip maps transport failures to timeout or connection errors.
func (a *Adapter) roundTrip(ctx context.Context, httpReq *http.Request) (*Response, error) {
	httpResp, err := a.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}
	headers := make(map[string]string, len(httpResp.Header))
	for k, vs := range httpResp.Header {
		if len(vs) > 0 {
			headers[k] = vs[0]
		}
	}
	return &Response{StatusCode: httpResp.StatusCode, Headers: headers, Body: body}, nil
}

// redactURL keeps credentials and the query string out of logs and
// spans.
func redactURL(u *url.URL) string {
	c := *u
	c.RawQuery = ""
	c.User = nil
	return c.String()
}

func isTimeout(err error) bool {
	t, ok := err.(interface{ Timeout() bool })
	return ok && t.Timeout()
}
