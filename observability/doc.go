// Package observability sets up OpenTelemetry tracing and the span helpers
// used by the redis and httpclient packages.
//
//	tp, err := observability.InitTracer(ctx, cfg.Tracing)
//	if tp != nil {
//		defer tp.Shutdown(ctx)
//	}
//
//	ctx, span := observability.StartSpan(ctx, "redis.get",
//		attribute.String(observability.AttrDBSystem, "redis"))
//	defer observability.EndSpan(span, err)
package observability
