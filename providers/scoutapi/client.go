package scoutapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/leofalp/concertscout/internal/utils"
	"github.com/leofalp/concertscout/providers/observability"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultUserID  = "default_user"
	defaultTimeout = 120 * time.Second
)

// Client talks to the agent backend.
type Client struct {
	baseURL  string
	client   *http.Client
	observer observability.Provider
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the backend URL. A URL without scheme is assumed to be
// https.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = normalizeBaseURL(baseURL)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets the timeout of the default HTTP client. The agent
// pipeline is slow, so the default is generous.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client = &http.Client{Timeout: timeout}
	}
}

// WithObserver enables spans and logs for backend requests.
func WithObserver(observer observability.Provider) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// New creates a Client. The base URL defaults to CONCERTSCOUT_BACKEND_URL,
// then BACKEND_URL, then http://localhost:8000.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: normalizeBaseURL(baseURLFromEnv()),
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func baseURLFromEnv() string {
	if v := os.Getenv("CONCERTSCOUT_BACKEND_URL"); v != "" {
		return v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		return v
	}
	return defaultBaseURL
}

func normalizeBaseURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return defaultBaseURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return raw
}

// Chat sends a message to the agent. UserID defaults to "default_user".
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("chat: message is required")
	}
	if req.UserID == "" {
		req.UserID = defaultUserID
	}

	ctx, end := c.startSpan(ctx, "chat",
		observability.String(observability.AttrUserID, req.UserID),
		observability.String(observability.AttrSessionID, req.SessionID),
	)

	_, resp, err := utils.DoPostSync[ChatResponse](ctx, c.client, c.baseURL+"/chat", req)
	end(err)
	if err != nil {
		return nil, wrapError("chat", err)
	}
	return resp, nil
}

// CreateSession starts a new session for userID ("default_user" if empty).
func (c *Client) CreateSession(ctx context.Context, userID string) (*SessionResponse, error) {
	if userID == "" {
		userID = defaultUserID
	}
	ctx, end := c.startSpan(ctx, "create_session", observability.String(observability.AttrUserID, userID))

	// the backend reads user_id from the query string
	endpoint := c.baseURL + "/sessions?user_id=" + url.QueryEscape(userID)
	_, resp, err := utils.DoPostSync[SessionResponse](ctx, c.client, endpoint, map[string]string{"user_id": userID})
	end(err)
	if err != nil {
		return nil, wrapError("create session", err)
	}
	return resp, nil
}

// GetSession returns metadata about an existing session.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	if sessionID == "" {
		return nil, errors.New("get session: session id is required")
	}
	ctx, end := c.startSpan(ctx, "get_session", observability.String(observability.AttrSessionID, sessionID))

	_, resp, err := utils.DoGetSync[SessionInfo](ctx, c.client, c.baseURL+"/sessions/"+url.PathEscape(sessionID))
	end(err)
	if err != nil {
		return nil, wrapError("get session", err)
	}
	return resp, nil
}

// DeleteSession removes a session.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("delete session: session id is required")
	}
	ctx, end := c.startSpan(ctx, "delete_session", observability.String(observability.AttrSessionID, sessionID))

	_, _, err := utils.DoJSON[messageResponse](ctx, c.client, http.MethodDelete, c.baseURL+"/sessions/"+url.PathEscape(sessionID), nil)
	end(err)
	if err != nil {
		return wrapError("delete session", err)
	}
	return nil
}

// Health checks that the backend is up.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	ctx, end := c.startSpan(ctx, "health")

	_, resp, err := utils.DoGetSync[HealthResponse](ctx, c.client, c.baseURL+"/health")
	end(err)
	if err != nil {
		return nil, wrapError("health check", err)
	}
	return resp, nil
}

// startSpan opens a backend span when an observer is configured. The returned
// func ends it, recording err if non-nil.
func (c *Client) startSpan(ctx context.Context, op string, attrs ...observability.Attribute) (context.Context, func(error)) {
	if c.observer == nil {
		return ctx, func(error) {}
	}

	attrs = append(attrs, observability.String("backend.operation", op))
	ctx, span := c.observer.StartSpan(ctx, observability.SpanBackendRequest, attrs...)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, err.Error())
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
		span.End()
	}
}
