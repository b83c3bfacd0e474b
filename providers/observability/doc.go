// Package observability defines the interfaces and attribute conventions used
// for tracing, metrics and structured logging throughout concertscout.
//
// The central entry point is [Provider], which composes [Tracer], [Metrics],
// and [Logger] into a single injectable dependency. An active [Span] travels
// through a [context.Context] via [ContextWithSpan] and [SpanFromContext], so
// low-level helpers such as the HTTP utilities can annotate the caller's span
// without taking a Provider argument.
//
// The semconv.go file holds the attribute keys, span names and metric names
// recorded by the parser, the backend client and the HTTP surface.
package observability
