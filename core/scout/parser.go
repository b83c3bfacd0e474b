package scout

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/leofalp/concertscout/core/parse"
	"github.com/leofalp/concertscout/internal/utils"
	"github.com/leofalp/concertscout/providers/observability"
	"github.com/leofalp/concertscout/providers/observability/slogobs"
)

const payloadPreviewLength = 200

// Parser runs the classification and extraction pipeline. A Parser holds only
// configuration and is safe for concurrent use.
type Parser struct {
	observer   observability.Provider
	classifier Classifier
	repair     bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithObserver routes diagnostics, spans and counters to observer.
func WithObserver(observer observability.Provider) Option {
	return func(p *Parser) {
		p.observer = observer
	}
}

// WithClassifier replaces the default clarifying-question heuristics.
func WithClassifier(classifier Classifier) Option {
	return func(p *Parser) {
		p.classifier = classifier
	}
}

// WithJSONRepair enables recovery of malformed or truncated section payloads.
// By default a malformed payload yields an empty section.
func WithJSONRepair(enabled bool) Option {
	return func(p *Parser) {
		p.repair = enabled
	}
}

// New creates a Parser. Without WithObserver, diagnostics go to slog's
// default logger.
func New(opts ...Option) *Parser {
	p := &Parser{classifier: NewClassifier()}
	for _, opt := range opts {
		opt(p)
	}
	if p.observer == nil {
		p.observer = slogobs.New(slogobs.WithLogger(slog.Default()))
	}
	return p
}

// Parse parses text with a default Parser.
func Parse(text string) ParseResult {
	return New().Parse(context.Background(), text)
}

// Parse classifies text and, unless it is a clarifying question, extracts,
// decodes and normalizes the three sections. It never fails: malformed
// sections are logged and come back empty.
func (p *Parser) Parse(ctx context.Context, text string) ParseResult {
	ctx, span := p.observer.StartSpan(ctx, observability.SpanParse,
		observability.Int(observability.AttrResponseLength, utf8.RuneCountInString(text)),
	)
	defer span.End()

	result := newParseResult()
	result.Classification = p.classifier.Classify(text)

	p.observer.Debug(ctx, "Classified response",
		observability.String(observability.AttrClassification, result.Classification.Kind.String()),
		observability.Int(observability.AttrResponseLength, utf8.RuneCountInString(text)),
	)

	if result.Classification.IsQuestion() {
		result.IsFollowUpQuestion = true
		result.FollowUpMessage = result.Classification.Message
		p.observer.Counter(observability.MetricFollowUpQuestions).Add(ctx, 1)
		span.SetStatus(observability.StatusOK, "follow-up question")
		return result
	}

	sections := ExtractSections(text)
	result.TopGenreName = GenreName(sections.Get(TopGenre).Raw)

	for _, key := range SectionKeys() {
		section := sections.Get(key)
		if section.Found() {
			span.AddEvent("section.extracted",
				observability.String(observability.AttrSection, key.String()),
				observability.String(observability.AttrStrategy, section.Strategy),
			)
		}

		genreName := ""
		if key == TopGenre {
			genreName = result.TopGenreName
		}

		raws := p.parseSection(ctx, key, section.Payload)
		concerts := make([]Concert, 0, len(raws))
		for i, raw := range raws {
			concerts = append(concerts, Normalize(raw, key, i, genreName))
		}

		result.setSection(key, concerts)
		result.AISections.set(key, ExtractCommentary(key, section.Raw))
	}

	if total := result.Total(); total > 0 {
		p.observer.Counter(observability.MetricConcertsParsed).Add(ctx, int64(total))
	}
	span.SetAttributes(
		observability.Int(observability.AttrConcertCount, result.Total()),
		observability.String(observability.AttrGenreName, result.TopGenreName),
	)
	span.SetStatus(observability.StatusOK, "")
	return result
}

func (p *Parser) parseSection(ctx context.Context, key SectionKey, payload string) []RawEvent {
	decode := ParseConcertSection
	if p.repair {
		decode = parseConcertSectionLenient
	}

	events, err := decode(payload)
	if err != nil {
		p.observer.Warn(ctx, "Failed to parse concert section",
			observability.String(observability.AttrSection, key.String()),
			observability.Error(err),
			observability.String(observability.AttrPayloadPreview, utils.TruncateString(payload, payloadPreviewLength)),
		)
		p.observer.Counter(observability.MetricSectionsMalformed).Add(ctx, 1,
			observability.String(observability.AttrSection, key.String()),
		)
	}
	return events
}

// ParseConcertSection decodes a section payload as a strict JSON array. Empty
// or whitespace-only payloads yield an empty slice and no error. On malformed
// JSON the slice is empty and the error describes the failure; the returned
// slice is never nil.
func ParseConcertSection(payload string) ([]RawEvent, error) {
	return decodeSection(payload, parse.Strict[[]RawEvent])
}

func parseConcertSectionLenient(payload string) ([]RawEvent, error) {
	return decodeSection(payload, parse.Lenient[[]RawEvent])
}

func decodeSection(payload string, decode func(string) ([]RawEvent, error)) ([]RawEvent, error) {
	if strings.TrimSpace(payload) == "" {
		return []RawEvent{}, nil
	}

	events, err := decode(payload)
	if err != nil {
		if errors.Is(err, parse.ErrEmptyContent) {
			return []RawEvent{}, nil
		}
		return []RawEvent{}, err
	}
	if events == nil {
		// a literal null payload
		return []RawEvent{}, nil
	}
	return events, nil
}
