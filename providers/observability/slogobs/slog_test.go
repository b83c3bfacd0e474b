package slogobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/concertscout/providers/observability"
)

func newBufferedObserver(format Format, level slog.Level) (*Observer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(WithFormat(format), WithLevel(level), WithOutput(&buf)), &buf
}

func TestObserver_LogLevels(t *testing.T) {
	observer, buf := newBufferedObserver(FormatText, slog.LevelWarn)
	ctx := context.Background()

	observer.Debug(ctx, "debug message")
	observer.Info(ctx, "info message")
	observer.Warn(ctx, "warn message", observability.String(observability.AttrSection, "topGenre"))
	observer.Error(ctx, "error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("records below WARN should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "scout.section=topGenre") {
		t.Errorf("expected warn record with section attribute, got: %s", output)
	}
	if !strings.Contains(output, "error message") {
		t.Errorf("expected error record, got: %s", output)
	}
}

func TestObserver_JSONFormat(t *testing.T) {
	observer, buf := newBufferedObserver(FormatJSON, slog.LevelInfo)
	observer.Info(context.Background(), "parsed", observability.Int(observability.AttrConcertCount, 3))

	output := buf.String()
	if !strings.Contains(output, `"msg":"parsed"`) {
		t.Errorf("expected JSON msg field, got: %s", output)
	}
	if !strings.Contains(output, `"scout.concerts.count":3`) {
		t.Errorf("expected JSON count attribute, got: %s", output)
	}
}

func TestObserver_SpanLifecycle(t *testing.T) {
	observer, buf := newBufferedObserver(FormatText, slog.LevelDebug)

	ctx, span := observer.StartSpan(context.Background(), observability.SpanParse)
	if observability.SpanFromContext(ctx) != span {
		t.Fatal("StartSpan() should attach the span to the returned context")
	}
	span.AddEvent("section.extracted", observability.String(observability.AttrStrategy, "fenced"))
	span.SetStatus(observability.StatusOK, "")
	span.RecordError(errors.New("boom"))
	span.RecordError(nil)
	span.End()

	output := buf.String()
	for _, want := range []string{"Span started", "section.extracted", "strategy=fenced", "Span error", "boom", "Span ended", "status=ok"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestObserver_Counter(t *testing.T) {
	observer, _ := newBufferedObserver(FormatText, slog.LevelError)
	ctx := context.Background()

	observer.Counter(observability.MetricSectionsMalformed).Add(ctx, 1)
	observer.Counter(observability.MetricSectionsMalformed).Add(ctx, 2)

	if got := observer.CounterValue(observability.MetricSectionsMalformed); got != 3 {
		t.Errorf("CounterValue() = %d, want 3", got)
	}
	if got := observer.CounterValue("missing"); got != 0 {
		t.Errorf("CounterValue(missing) = %d, want 0", got)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	observer := New(WithLogger(logger), WithFormat(FormatJSON))

	observer.Info(context.Background(), "hello")
	if output := buf.String(); !strings.Contains(output, "msg=hello") {
		t.Errorf("WithLogger should bypass format option, got: %s", output)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetLogLevelFromEnv(t *testing.T) {
	t.Setenv("CONCERTSCOUT_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "debug")
	if got := GetLogLevelFromEnv(); got != slog.LevelDebug {
		t.Errorf("GetLogLevelFromEnv() with LOG_LEVEL = %v, want DEBUG", got)
	}

	t.Setenv("CONCERTSCOUT_LOG_LEVEL", "error")
	if got := GetLogLevelFromEnv(); got != slog.LevelError {
		t.Errorf("GetLogLevelFromEnv() precedence = %v, want ERROR", got)
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("JSON"); got != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, want json", got)
	}
	if got := ParseFormat("pretty"); got != FormatText {
		t.Errorf("ParseFormat(pretty) = %v, want text", got)
	}

	t.Setenv("CONCERTSCOUT_LOG_FORMAT", "json")
	if got := GetFormatFromEnv(); got != FormatJSON {
		t.Errorf("GetFormatFromEnv() = %v, want json", got)
	}
}
