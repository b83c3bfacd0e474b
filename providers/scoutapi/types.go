package scoutapi

// ChatRequest is the body of POST /chat. An empty SessionID starts a new
// session.
type ChatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// Event is one agent event reported alongside a chat response.
type Event struct {
	Author       string         `json:"author"`
	Timestamp    string         `json:"timestamp"`
	Type         string         `json:"type"`
	Content      string         `json:"content,omitempty"`
	FunctionName string         `json:"function_name,omitempty"`
	FunctionArgs map[string]any `json:"function_args,omitempty"`
	Response     any            `json:"response,omitempty"`
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	Response  string  `json:"response"`
	SessionID string  `json:"session_id"`
	UserID    string  `json:"user_id"`
	Events    []Event `json:"events"`
}

// SessionResponse is the body returned by POST /sessions.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
}

// SessionInfo is the body returned by GET /sessions/{id}.
type SessionInfo struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at,omitempty"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type messageResponse struct {
	Message string `json:"message"`
}
