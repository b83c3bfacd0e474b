package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leofalp/concertscout/core/scout"
	"github.com/leofalp/concertscout/internal/server"
	"github.com/leofalp/concertscout/providers/observability/slogobs"
)

const sampleResponse = "Concerts for Your Top Artists:\n```json\n" +
	`[{"name": "Kacey Musgraves", "venue_name": "Climate Pledge Arena", "city_name": "Seattle", "date": "2025-09-12", "time": "19:30"}]` +
	"\n```\nEnjoy the shows!"

func newTestApp(in string) (*app, *bytes.Buffer) {
	var out bytes.Buffer
	a := newApp(strings.NewReader(in), &out)
	a.options.Timeout = 5 * time.Second
	a.observer = slogobs.New(slogobs.WithOutput(io.Discard), slogobs.WithLevel(slog.LevelError))
	return a, &out
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "response.txt")
	if err := os.WriteFile(path, []byte(sampleResponse), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		file     string
		stdin    string
		defaults bool
		wantTime string
	}{
		{name: "file", file: path, wantTime: "7:30 PM"},
		{name: "stdin", stdin: sampleResponse, wantTime: "7:30 PM"},
		{name: "dash reads stdin", file: "-", stdin: sampleResponse, defaults: true, wantTime: "7:30 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, out := newTestApp(tt.stdin)
			a.options.DisplayDefaults = tt.defaults
			cmd := &parseCommand{app: a}
			cmd.Args.File = tt.file

			if err := cmd.Execute(nil); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			var result scout.ParseResult
			if err := json.Unmarshal(out.Bytes(), &result); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, out.String())
			}
			if len(result.TopArtists) != 1 || result.TopArtists[0].Time != tt.wantTime {
				t.Errorf("unexpected result %+v", result)
			}
			if result.TopArtists[0].Date != "September 12, 2025" {
				t.Errorf("Date = %q", result.TopArtists[0].Date)
			}
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	a, _ := newTestApp("  \n")
	if err := (&parseCommand{app: a}).Execute(nil); err == nil {
		t.Error("expected an error for empty stdin")
	}

	cmd := &parseCommand{app: a}
	cmd.Args.File = filepath.Join(t.TempDir(), "missing.txt")
	if err := cmd.Execute(nil); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestParseCommand_Pretty(t *testing.T) {
	a, out := newTestApp(sampleResponse)
	a.options.Pretty = true
	if err := (&parseCommand{app: a}).Execute(nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "\n  \"topArtists\"") {
		t.Errorf("expected indented output, got %s", out.String())
	}
}

func TestAskCommand(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["message"] != "Country in Seattle" {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"detail":"exceeded your current quota"}`)
			return
		}
		fmt.Fprintf(w, `{"response": %q, "session_id": "s-3", "user_id": %q}`, sampleResponse, req["user_id"])
	}))
	defer backend.Close()

	a, out := newTestApp("")
	a.options.BackendURL = backend.URL

	cmd := &askCommand{app: a, UserID: "ana"}
	cmd.Args.Message = []string{"Country", "in", "Seattle"}
	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result server.ChatResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if result.SessionID != "s-3" || result.UserID != "ana" || len(result.Result.TopArtists) != 1 {
		t.Errorf("unexpected result %+v", result)
	}

	cmd.Args.Message = []string{"anything else"}
	err := cmd.Execute(nil)
	if err == nil || !strings.Contains(err.Error(), "out of quota") {
		t.Errorf("Execute() error = %v, want quota error", err)
	}
}
