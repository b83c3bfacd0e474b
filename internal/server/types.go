package server

import (
	"context"

	"github.com/leofalp/concertscout/core/scout"
	"github.com/leofalp/concertscout/providers/scoutapi"
)

// Backend is the part of the agent backend the server talks to.
type Backend interface {
	Chat(ctx context.Context, req scoutapi.ChatRequest) (*scoutapi.ChatResponse, error)
	CreateSession(ctx context.Context, userID string) (*scoutapi.SessionResponse, error)
	Health(ctx context.Context) (*scoutapi.HealthResponse, error)
}

var _ Backend = (*scoutapi.Client)(nil)

// ParseRequest is the JSON form of a POST /parse body.
type ParseRequest struct {
	Response string `json:"response"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// ChatResult pairs the backend envelope with the parsed response.
type ChatResult struct {
	SessionID string            `json:"session_id"`
	UserID    string            `json:"user_id"`
	Response  string            `json:"response"`
	Result    scout.ParseResult `json:"result"`
}

// SessionRequest is the body of POST /sessions.
type SessionRequest struct {
	UserID string `json:"user_id"`
}
