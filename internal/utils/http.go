package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leofalp/concertscout/providers/observability"
)

// HeaderOption is an extra request header.
type HeaderOption struct {
	Key   string
	Value string
}

// HTTPStatusError is returned for non-2xx responses.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, TruncateString(string(e.Body), DefaultMaxStringLength))
}

// DoPostSync POSTs body as JSON and decodes the JSON response into Output.
func DoPostSync[Output any](ctx context.Context, client *http.Client, url string, body any, headers ...HeaderOption) (*http.Response, *Output, error) {
	return DoJSON[Output](ctx, client, http.MethodPost, url, body, headers...)
}

// DoGetSync GETs url and decodes the JSON response into Output.
func DoGetSync[Output any](ctx context.Context, client *http.Client, url string, headers ...HeaderOption) (*http.Response, *Output, error) {
	return DoJSON[Output](ctx, client, http.MethodGet, url, nil, headers...)
}

// DoJSON performs a synchronous HTTP request and decodes the JSON response.
// A nil body sends no request body; a nil client means http.DefaultClient.
//
// Error Handling Strategy:
//   - Context errors (timeout, cancellation) are propagated as transport errors
//   - Non-2xx statuses return *HTTPStatusError with the response body
//   - Response body close errors are logged but don't override primary errors
//   - JSON decoding errors include a response preview for debugging
//
// When the context carries a span, request and response events are added to it.
func DoJSON[Output any](ctx context.Context, client *http.Client, method, url string, body any, headers ...HeaderOption) (*http.Response, *Output, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var reader io.Reader
	bodySize := 0
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("error marshaling body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
		bodySize = len(jsonBody)
	}

	if span != nil {
		span.AddEvent("http.request.prepared",
			observability.String(observability.AttrHTTPMethod, method),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, bodySize),
		)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)
	if err != nil {
		if span != nil {
			span.AddEvent("http.request.error",
				observability.Error(err),
				observability.Duration("http.request.duration", requestDuration),
			)
		}
		return res, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if closeErr := Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr.Error(), "url", url)
		}
	}(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if span != nil {
		span.AddEvent("http.response.received",
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration("http.request.duration", requestDuration),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, &HTTPStatusError{StatusCode: res.StatusCode, Status: res.Status, Body: respBody}
	}

	var out Output
	if err = json.Unmarshal(respBody, &out); err != nil {
		return res, nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nResponse preview: %s", res.StatusCode, err, TruncateString(string(respBody), 500))
	}
	return res, &out, nil
}
