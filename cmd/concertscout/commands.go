package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leofalp/concertscout/internal/server"
	"github.com/leofalp/concertscout/providers/observability"
	"github.com/leofalp/concertscout/providers/scoutapi"
)

type parseCommand struct {
	app *app

	Args struct {
		File string `positional-arg-name:"FILE" description:"File holding the response; stdin when omitted or -"`
	} `positional-args:"yes"`
}

func (c *parseCommand) Execute(_ []string) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}

	result := c.app.newParser().Parse(context.Background(), text)
	return c.app.print(c.app.present(result))
}

func (c *parseCommand) readInput() (string, error) {
	var (
		data []byte
		err  error
	)
	if c.Args.File == "" || c.Args.File == "-" {
		data, err = io.ReadAll(c.app.in)
	} else {
		data, err = os.ReadFile(c.Args.File)
	}
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New("reading response: input is empty")
	}
	return string(data), nil
}

type askCommand struct {
	app *app

	UserID    string `long:"user-id" env:"CONCERTSCOUT_USER_ID" default:"default_user" description:"Backend user id"`
	SessionID string `long:"session-id" description:"Continue an existing session"`

	Args struct {
		Message []string `positional-arg-name:"MESSAGE" required:"1"`
	} `positional-args:"yes"`
}

func (c *askCommand) Execute(_ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	resp, err := c.app.newBackend().Chat(ctx, scoutapi.ChatRequest{
		Message:   strings.Join(c.Args.Message, " "),
		UserID:    c.UserID,
		SessionID: c.SessionID,
	})
	if err != nil {
		var apiErr *scoutapi.APIError
		if errors.As(err, &apiErr) && apiErr.IsQuotaExceeded {
			return fmt.Errorf("the agent is out of quota, try again later: %w", err)
		}
		return err
	}

	result := c.app.newParser().Parse(ctx, resp.Response)
	return c.app.print(server.ChatResult{
		SessionID: resp.SessionID,
		UserID:    resp.UserID,
		Response:  resp.Response,
		Result:    c.app.present(result),
	})
}

type serveCommand struct {
	app *app

	Port            string        `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	NoBackend       bool          `long:"no-backend" description:"Serve /parse only, without the backend proxy routes"`
	GinDebug        bool          `long:"gin-debug" env:"CONCERTSCOUT_GIN_DEBUG" description:"Run gin in debug mode"`
	ShutdownTimeout time.Duration `long:"shutdown-timeout" default:"30s" description:"Grace period for in-flight requests"`
}

func (c *serveCommand) Execute(_ []string) error {
	observer := c.app.obs()
	ctx := context.Background()

	if c.GinDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := []server.HandlerOption{
		server.WithObserver(observer),
		server.WithDisplayDefaults(c.app.options.DisplayDefaults),
	}
	backendURL := "disabled"
	if !c.NoBackend {
		backend := c.app.newBackend()
		backendURL = backend.BaseURL()
		opts = append(opts, server.WithBackend(backend))
	}
	handler := server.NewHandler(c.app.newParser(), opts...)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: c.app.options.Timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		observer.Info(ctx, "Starting HTTP server",
			observability.String("port", c.Port),
			observability.String("backend", backendURL),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigChan:
		observer.Info(ctx, "Received signal", observability.String("signal", sig.String()))
	case runErr = <-serverErrChan:
		observer.Error(ctx, "Server error", observability.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, c.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	observer.Info(ctx, "HTTP server stopped")
	return runErr
}
