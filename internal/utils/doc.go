// Package utils provides shared low-level helpers used by concertscout
// internals: JSON HTTP round-trips that annotate the caller's span
// ([DoJSON], [DoPostSync], [DoGetSync]) and string helpers for log output
// ([JSONToString], [TruncateString]).
package utils
