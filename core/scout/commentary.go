package scout

import (
	"strings"
	"unicode"
)

// Commentary shown when the model wrote nothing to introduce a section.
const (
	DefaultTopArtistsCommentary     = "Here are concerts featuring your top artists!"
	DefaultTopGenreCommentary       = "Here are concerts in your favorite genre!"
	DefaultRelatedArtistsCommentary = "Here are concerts by artists similar to your favorites!"
)

// DefaultCommentary returns the filler commentary for key.
func DefaultCommentary(key SectionKey) string {
	switch key {
	case TopGenre:
		return DefaultTopGenreCommentary
	case RelatedArtists:
		return DefaultRelatedArtistsCommentary
	default:
		return DefaultTopArtistsCommentary
	}
}

// ExtractCommentary recovers the remark the model wrote between a section's
// heading and its payload. The heading (genre qualifier included), the fence
// and any markdown emphasis are stripped; an empty remark becomes the
// section's default commentary.
func ExtractCommentary(key SectionKey, raw string) string {
	text := raw
	if loc := labelPatterns[key].FindStringIndex(text); loc != nil && strings.TrimSpace(text[:loc[0]]) == "" {
		text = text[loc[1]:]
	}
	if end := payloadStart(text); end >= 0 {
		text = text[:end]
	}

	text = strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '*' || r == '_'
	})
	if text == "" {
		return DefaultCommentary(key)
	}
	return text
}

// payloadStart returns the offset of the first fence or array bracket, or -1.
func payloadStart(s string) int {
	fenceAt := strings.Index(s, fence)
	arrayAt := strings.IndexByte(s, '[')
	switch {
	case fenceAt < 0:
		return arrayAt
	case arrayAt < 0:
		return fenceAt
	default:
		return min(fenceAt, arrayAt)
	}
}
