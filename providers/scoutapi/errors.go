package scoutapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/leofalp/concertscout/internal/utils"
)

var quotaMarkers = []string{"429 RESOURCE_EXHAUSTED", "exceeded your current quota", "rate limit"}

// APIError describes a non-2xx response from the backend.
type APIError struct {
	Status          int
	StatusText      string
	Message         string
	IsQuotaExceeded bool
	IsServerError   bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed: %d %s: %s", e.Status, e.StatusText, e.Message)
}

// newAPIError converts a transport-level status error. The message is taken
// from the body's "detail" or "message" field, falling back to the status
// text.
func newAPIError(statusErr *utils.HTTPStatusError) *APIError {
	statusText := http.StatusText(statusErr.StatusCode)
	message := statusText

	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(statusErr.Body, &body) == nil {
		switch {
		case body.Detail != "":
			message = body.Detail
		case body.Message != "":
			message = body.Message
		case body.Error != "":
			message = body.Error
		}
	}

	quota := statusErr.StatusCode == http.StatusTooManyRequests
	for _, marker := range quotaMarkers {
		if strings.Contains(message, marker) {
			quota = true
		}
	}

	return &APIError{
		Status:          statusErr.StatusCode,
		StatusText:      statusText,
		Message:         message,
		IsQuotaExceeded: quota,
		IsServerError:   statusErr.StatusCode >= 500,
	}
}

// wrapError turns status errors into *APIError and leaves others as is.
func wrapError(op string, err error) error {
	var statusErr *utils.HTTPStatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%s: %w", op, newAPIError(statusErr))
	}
	return fmt.Errorf("%s: %w", op, err)
}
