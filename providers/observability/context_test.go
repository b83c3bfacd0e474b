package observability

import (
	"context"
	"testing"
)

type recordingSpan struct {
	events []string
}

func (s *recordingSpan) End()                                 {}
func (s *recordingSpan) SetAttributes(...Attribute)           {}
func (s *recordingSpan) SetStatus(StatusCode, string)         {}
func (s *recordingSpan) RecordError(error)                    {}
func (s *recordingSpan) AddEvent(name string, _ ...Attribute) { s.events = append(s.events, name) }

func TestSpanFromContext_Empty(t *testing.T) {
	if span := SpanFromContext(context.Background()); span != nil {
		t.Errorf("SpanFromContext() = %v, want nil", span)
	}
	//nolint:staticcheck // nil context is handled explicitly
	if span := SpanFromContext(nil); span != nil {
		t.Errorf("SpanFromContext(nil) = %v, want nil", span)
	}
}

func TestContextWithSpan_RoundTrip(t *testing.T) {
	span := &recordingSpan{}
	ctx := ContextWithSpan(context.Background(), span)

	got := SpanFromContext(ctx)
	if got != span {
		t.Fatalf("SpanFromContext() = %v, want %v", got, span)
	}

	got.AddEvent("ping")
	if len(span.events) != 1 || span.events[0] != "ping" {
		t.Errorf("events = %v, want [ping]", span.events)
	}
}

func TestErrorAttribute(t *testing.T) {
	if attr := Error(nil); attr.Key != AttrError || attr.Value != "" {
		t.Errorf("Error(nil) = %+v, want empty error attribute", attr)
	}
	if attr := Error(context.Canceled); attr.Value != context.Canceled.Error() {
		t.Errorf("Error(context.Canceled).Value = %v, want %q", attr.Value, context.Canceled.Error())
	}
}
