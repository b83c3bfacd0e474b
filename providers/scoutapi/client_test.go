package scoutapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
}

func TestChat_Success(t *testing.T) {
	var got ChatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"response":"Concerts for Your Top Artists:\n[]","session_id":"s-1","user_id":"default_user","events":[{"author":"final_recommender_agent","timestamp":"2025-08-01T10:00:00","type":"text","content":"hi"}]}`)
	})

	resp, err := client.Chat(context.Background(), ChatRequest{Message: "Concerts in Seattle"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got.Message != "Concerts in Seattle" || got.UserID != "default_user" || got.SessionID != "" {
		t.Errorf("unexpected request body %+v", got)
	}
	if resp.SessionID != "s-1" || !strings.HasPrefix(resp.Response, "Concerts for Your Top Artists") {
		t.Errorf("unexpected response %+v", resp)
	}
	if len(resp.Events) != 1 || resp.Events[0].Author != "final_recommender_agent" {
		t.Errorf("unexpected events %+v", resp.Events)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	client := New(WithBaseURL("http://127.0.0.1:1"))
	if _, err := client.Chat(context.Background(), ChatRequest{Message: "  "}); err == nil {
		t.Error("Chat() with empty message should fail before sending")
	}
}

func TestChat_APIErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantQuota   bool
		wantServer  bool
	}{
		{
			name:        "quota in detail",
			status:      http.StatusInternalServerError,
			body:        `{"detail":"Error processing chat: 429 RESOURCE_EXHAUSTED"}`,
			wantMessage: "Error processing chat: 429 RESOURCE_EXHAUSTED",
			wantQuota:   true,
			wantServer:  true,
		},
		{
			name:        "status 429",
			status:      http.StatusTooManyRequests,
			body:        `{"message":"slow down"}`,
			wantMessage: "slow down",
			wantQuota:   true,
		},
		{
			name:        "not found",
			status:      http.StatusNotFound,
			body:        `{"detail":"Session not found"}`,
			wantMessage: "Session not found",
		},
		{
			name:        "non JSON body",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantMessage: "Bad Gateway",
			wantServer:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := client.Chat(context.Background(), ChatRequest{Message: "hi"})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Chat() error = %v, want *APIError", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
			if apiErr.IsQuotaExceeded != tt.wantQuota {
				t.Errorf("IsQuotaExceeded = %v, want %v", apiErr.IsQuotaExceeded, tt.wantQuota)
			}
			if apiErr.IsServerError != tt.wantServer {
				t.Errorf("IsServerError = %v, want %v", apiErr.IsServerError, tt.wantServer)
			}
		})
	}
}

func TestSessions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/sessions":
			fmt.Fprintf(w, `{"session_id":"s-9","user_id":%q,"message":"Session created successfully"}`, r.URL.Query().Get("user_id"))
		case r.Method == http.MethodGet && r.URL.Path == "/sessions/s-9":
			fmt.Fprint(w, `{"session_id":"s-9","user_id":"ana","created_at":"2025-08-01T10:00:00"}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/sessions/s-9":
			fmt.Fprint(w, `{"message":"Session deleted successfully"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"detail":"Session not found"}`)
		}
	})
	ctx := context.Background()

	created, err := client.CreateSession(ctx, "ana")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if created.SessionID != "s-9" || created.UserID != "ana" {
		t.Errorf("unexpected session %+v", created)
	}

	info, err := client.GetSession(ctx, "s-9")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if info.CreatedAt == "" {
		t.Errorf("expected created_at, got %+v", info)
	}

	if err := client.DeleteSession(ctx, "s-9"); err != nil {
		t.Errorf("DeleteSession() error = %v", err)
	}

	var apiErr *APIError
	if _, err := client.GetSession(ctx, "missing"); !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Errorf("GetSession(missing) error = %v, want 404 APIError", err)
	}
	if err := client.DeleteSession(ctx, ""); err == nil {
		t.Error("DeleteSession(\"\") should fail")
	}
}

func TestHealth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"healthy","service":"Concert Scout AI API"}`)
	})

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", health.Status)
	}
}

func TestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"status":"healthy"}`)
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL), WithTimeout(20*time.Millisecond))
	_, err := client.Health(context.Background())
	var apiErr *APIError
	if err == nil || errors.As(err, &apiErr) {
		t.Errorf("Health() error = %v, want transport timeout", err)
	}
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name string
		env  string
		opt  string
		want string
	}{
		{name: "default", want: "http://localhost:8000"},
		{name: "env without scheme", env: "scout.example.com", want: "https://scout.example.com"},
		{name: "option wins", env: "scout.example.com", opt: "http://localhost:9000/", want: "http://localhost:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONCERTSCOUT_BACKEND_URL", "")
			t.Setenv("BACKEND_URL", tt.env)

			var opts []Option
			if tt.opt != "" {
				opts = append(opts, WithBaseURL(tt.opt))
			}
			if got := New(opts...).BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
