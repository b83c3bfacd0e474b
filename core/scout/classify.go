package scout

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

const (
	// QuestionLengthThreshold is the length, in characters, below which an
	// unstructured response containing a question indicator is treated as a
	// clarifying question.
	QuestionLengthThreshold = 1000

	// JSONFenceMarker marks a fenced JSON block in a structured response.
	JSONFenceMarker = "```json"
)

// QuestionIndicators returns the substrings that mark a clarifying question
// or refusal. Matching is case-insensitive.
func QuestionIndicators() []string {
	return []string{"?", "need", "provide", "specify", "can you", "sorry", "unable", "cannot"}
}

// ClassificationKind tags a Classification.
type ClassificationKind int

const (
	// StructuredData means the response carries labeled concert sections.
	StructuredData ClassificationKind = iota
	// ClarifyingQuestion means the model asked for more input instead.
	ClarifyingQuestion
)

func (k ClassificationKind) String() string {
	if k == ClarifyingQuestion {
		return "question"
	}
	return "structured"
}

// Classification is the classifier outcome. Message is set only for
// clarifying questions and holds the trimmed response text.
type Classification struct {
	Kind    ClassificationKind
	Message string
}

// IsQuestion reports whether the response is a clarifying question.
func (c Classification) IsQuestion() bool {
	return c.Kind == ClarifyingQuestion
}

// Classifier decides whether a response is a clarifying question. The zero
// value is not usable; start from NewClassifier.
type Classifier struct {
	Indicators      []string
	LengthThreshold int
	FenceMarker     string
}

// NewClassifier returns a Classifier with the default heuristics.
func NewClassifier() Classifier {
	return Classifier{
		Indicators:      QuestionIndicators(),
		LengthThreshold: QuestionLengthThreshold,
		FenceMarker:     JSONFenceMarker,
	}
}

// Classify applies the default heuristics to text.
func Classify(text string) Classification {
	return NewClassifier().Classify(text)
}

// Classify returns ClarifyingQuestion when text is neither valid JSON nor
// contains a JSON fence, contains at least one indicator, and is shorter than
// the length threshold. Everything else is StructuredData.
func (c Classifier) Classify(text string) Classification {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(text)

	if json.Valid([]byte(trimmed)) {
		return Classification{Kind: StructuredData}
	}
	if c.FenceMarker != "" && strings.Contains(lower, strings.ToLower(c.FenceMarker)) {
		return Classification{Kind: StructuredData}
	}

	if c.hasIndicator(lower) && utf8.RuneCountInString(trimmed) < c.LengthThreshold {
		return Classification{Kind: ClarifyingQuestion, Message: trimmed}
	}
	return Classification{Kind: StructuredData}
}

func (c Classifier) hasIndicator(lower string) bool {
	for _, indicator := range c.Indicators {
		if indicator != "" && strings.Contains(lower, strings.ToLower(indicator)) {
			return true
		}
	}
	return false
}
