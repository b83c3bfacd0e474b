package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leofalp/concertscout/core/scout"
	"github.com/leofalp/concertscout/providers/observability"
	"github.com/leofalp/concertscout/providers/observability/slogobs"
	"github.com/leofalp/concertscout/providers/scoutapi"
)

const (
	serviceName    = "concertscout"
	maxBodyBytes   = 1 << 20
	sessionTimeout = 10 * time.Second
)

// Handler serves the HTTP routes.
type Handler struct {
	parser          *scout.Parser
	backend         Backend
	observer        observability.Provider
	displayDefaults bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithBackend enables the /chat and /sessions routes.
func WithBackend(backend Backend) HandlerOption {
	return func(h *Handler) {
		h.backend = backend
	}
}

// WithObserver sets where request logs go.
func WithObserver(observer observability.Provider) HandlerOption {
	return func(h *Handler) {
		h.observer = observer
	}
}

// WithDisplayDefaults makes responses carry display defaults (show time,
// genre, placeholder image) unless a request opts out with ?defaults=false.
func WithDisplayDefaults(enabled bool) HandlerOption {
	return func(h *Handler) {
		h.displayDefaults = enabled
	}
}

// NewHandler creates a Handler around parser.
func NewHandler(parser *scout.Parser, opts ...HandlerOption) *Handler {
	h := &Handler{parser: parser}
	for _, opt := range opts {
		opt(h)
	}
	if h.observer == nil {
		h.observer = slogobs.New()
	}
	if h.parser == nil {
		h.parser = scout.New(scout.WithObserver(h.observer))
	}
	return h
}

// Parse handles POST /parse. A JSON body must carry a "response" field; any
// other content type is taken as the raw response text.
func (h *Handler) Parse(c *gin.Context) {
	text, err := h.readResponseText(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.parser.Parse(c.Request.Context(), text)
	c.JSON(http.StatusOK, h.present(c, result))
}

func (h *Handler) readResponseText(c *gin.Context) (string, error) {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		var req ParseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return "", errors.New("invalid JSON body")
		}
		if strings.TrimSpace(req.Response) == "" {
			return "", errors.New("response is required")
		}
		return req.Response, nil
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return "", errors.New("failed to read body")
	}
	if strings.TrimSpace(string(body)) == "" {
		return "", errors.New("response is required")
	}
	return string(body), nil
}

// Chat handles POST /chat: forward the message, then parse the reply.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	ctx := c.Request.Context()
	resp, err := h.backend.Chat(ctx, scoutapi.ChatRequest{
		Message:   req.Message,
		UserID:    req.UserID,
		SessionID: req.SessionID,
	})
	if err != nil {
		h.backendError(c, "chat", err)
		return
	}

	result := h.parser.Parse(ctx, resp.Response)
	c.JSON(http.StatusOK, ChatResult{
		SessionID: resp.SessionID,
		UserID:    resp.UserID,
		Response:  resp.Response,
		Result:    h.present(c, result),
	})
}

// CreateSession handles POST /sessions. An empty body is allowed.
func (h *Handler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), sessionTimeout)
	defer cancel()

	resp, err := h.backend.CreateSession(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusRequestTimeout, gin.H{
				"error":   "Request timeout - backend took too long to respond",
				"details": err.Error(),
			})
			return
		}
		h.backendError(c, "create_session", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health handles GET /health. Without a backend only the local service is
// reported.
func (h *Handler) Health(c *gin.Context) {
	now := time.Now().UTC().Format(time.RFC3339)
	if h.backend == nil {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName, "timestamp": now})
		return
	}

	backend, err := h.backend.Health(c.Request.Context())
	if err != nil {
		var apiErr *scoutapi.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.Status, gin.H{"error": "Backend health check failed", "status": apiErr.Status})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "Backend unavailable",
			"details":   err.Error(),
			"timestamp": now,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": now,
		"backend":   backend,
	})
}

// backendError keeps the backend's status for API errors and maps transport
// failures to 500.
func (h *Handler) backendError(c *gin.Context, op string, err error) {
	_ = c.Error(err)

	var apiErr *scoutapi.APIError
	if errors.As(err, &apiErr) {
		h.observer.Warn(c.Request.Context(), "Backend returned an error",
			observability.String("backend.operation", op),
			observability.Int(observability.AttrHTTPStatusCode, apiErr.Status),
			observability.Bool("backend.quota_exceeded", apiErr.IsQuotaExceeded),
		)
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}

	h.observer.Error(c.Request.Context(), "Backend request failed",
		observability.String("backend.operation", op),
		observability.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"details": err.Error(),
	})
}

// present applies display defaults when enabled, honoring ?defaults=.
func (h *Handler) present(c *gin.Context, result scout.ParseResult) scout.ParseResult {
	apply := h.displayDefaults
	if v, ok := c.GetQuery("defaults"); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			apply = parsed
		}
	}
	if apply {
		return scout.ApplyDisplayDefaults(result)
	}
	return result
}
