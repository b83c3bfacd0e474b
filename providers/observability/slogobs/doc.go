// Package slogobs provides an observability.Provider implementation backed by
// Go's standard library log/slog package.
// Spans and counters are rendered as structured log records; output format and
// level can be tuned with [WithFormat], [WithLevel], [WithOutput] and
// [WithLogger], or through CONCERTSCOUT_LOG_FORMAT and CONCERTSCOUT_LOG_LEVEL.
package slogobs
