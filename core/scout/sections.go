package scout

import (
	"regexp"
	"strings"
	"unicode"
)

// labelPatterns match the heading that introduces each section. The genre
// heading may carry a parenthetical genre name, and any heading may be
// wrapped in markdown emphasis or carry extra words before the colon.
var labelPatterns = [sectionCount]*regexp.Regexp{
	TopArtists:     regexp.MustCompile(`(?i)concerts\s+for\s+your\s+top\s+artists\b(?:\s*\([^)\n]*\))?[^:\n]*:[*_]*`),
	TopGenre:       regexp.MustCompile(`(?i)concerts\s+for\s+your\s+top\s+genre\b(?:\s*\([^)\n]*\))?[^:\n]*:[*_]*`),
	RelatedArtists: regexp.MustCompile(`(?i)concerts\s+for\s+your\s+related\s+artists\b(?:\s*\([^)\n]*\))?[^:\n]*:[*_]*`),
}

var genreNamePattern = regexp.MustCompile(`(?i)top\s+genre\s*\(([^)\n]+)\)`)

const fence = "```"

// Section is one labeled section located in a response. Raw runs from the
// start of the label to the end of the payload (closing fence included);
// Payload is the JSON array text. Both are empty when the label is absent.
type Section struct {
	Key      SectionKey
	Raw      string
	Payload  string
	Strategy string
}

// Found reports whether the section was located.
func (s Section) Found() bool {
	return s.Raw != ""
}

// Sections holds one Section per key, indexed by SectionKey.
type Sections [sectionCount]Section

// Get returns the section for key.
func (s Sections) Get(key SectionKey) Section {
	if key < 0 || int(key) >= sectionCount {
		return Section{Key: key}
	}
	return s[key]
}

// matcher is one boundary-detection strategy. label is the [start, end)
// offset of a section heading and bound the offset of the next heading of
// any section, or len(text).
type matcher struct {
	name  string
	match func(text string, label []int, bound int) (raw, payload string, ok bool)
}

// sectionMatchers returns the strategies in priority order, most specific
// first.
func sectionMatchers() []matcher {
	return []matcher{
		{name: "fenced", match: matchFenced},
		{name: "bounded", match: matchBounded},
		{name: "open", match: matchOpen},
	}
}

// ExtractSections locates every labeled section in text. Sections may appear
// in any order, any of them may be missing, and prose may follow the last
// payload. A missing section yields an empty Section.
func ExtractSections(text string) Sections {
	var labels [sectionCount][][]int
	for _, key := range SectionKeys() {
		labels[key] = labelPatterns[key].FindAllStringIndex(text, -1)
	}

	var sections Sections
	for _, key := range SectionKeys() {
		sections[key] = extractSection(text, key, labels)
	}
	return sections
}

func extractSection(text string, key SectionKey, labels [sectionCount][][]int) Section {
	for _, m := range sectionMatchers() {
		for _, label := range labels[key] {
			bound := nextLabel(labels, label[1], len(text))
			if raw, payload, ok := m.match(text, label, bound); ok {
				return Section{Key: key, Raw: raw, Payload: payload, Strategy: m.name}
			}
		}
	}
	return Section{Key: key}
}

// nextLabel returns the start of the first heading at or after pos, or end.
func nextLabel(labels [sectionCount][][]int, pos, end int) int {
	bound := end
	for _, locs := range labels {
		for _, loc := range locs {
			if loc[0] >= pos {
				if loc[0] < bound {
					bound = loc[0]
				}
				break
			}
		}
	}
	return bound
}

// matchFenced extracts the content of a ```json (or bare ```) block that
// follows the heading. Prose may sit between heading and fence as long as no
// other heading intervenes and the heading is not directly followed by an
// unfenced array.
func matchFenced(text string, label []int, bound int) (string, string, bool) {
	region := text[label[1]:bound]
	if strings.HasPrefix(strings.TrimLeftFunc(region, unicode.IsSpace), "[") {
		return "", "", false
	}

	open := strings.Index(region, fence)
	if open < 0 {
		return "", "", false
	}
	contentStart, ok := skipFenceTag(region, open)
	if !ok {
		return "", "", false
	}

	closing := strings.Index(region[contentStart:], fence)
	if closing < 0 {
		return "", "", false
	}
	contentEnd := contentStart + closing

	raw := text[label[0] : label[1]+contentEnd+len(fence)]
	payload := strings.TrimSpace(region[contentStart:contentEnd])
	return raw, payload, true
}

// matchBounded extracts an unfenced array that starts right after the heading
// and ends right before the next heading or the end of text.
func matchBounded(text string, label []int, bound int) (string, string, bool) {
	start := skipSpace(text, label[1])
	if start >= bound || text[start] != '[' {
		return "", "", false
	}

	payload := strings.TrimRightFunc(text[start:bound], unicode.IsSpace)
	if !strings.HasSuffix(payload, "]") {
		return "", "", false
	}
	return text[label[0] : start+len(payload)], payload, true
}

// matchOpen is the last resort: an array starting after the heading (an
// unterminated opening fence is tolerated), ending at its balancing bracket,
// or at the end of text when the array is never closed.
func matchOpen(text string, label []int, _ int) (string, string, bool) {
	start := skipSpace(text, label[1])
	if strings.HasPrefix(text[start:], fence) {
		contentStart, ok := skipFenceTag(text, start)
		if !ok {
			return "", "", false
		}
		start = skipSpace(text, contentStart)
	}
	if start >= len(text) || text[start] != '[' {
		return "", "", false
	}

	end, closed := scanArray(text, start)
	if !closed {
		end = len(text)
	}
	return text[label[0]:end], text[start:end], true
}

// skipFenceTag returns the offset just past an opening fence at open and its
// optional "json" language tag. Fences tagged with another language are
// rejected.
func skipFenceTag(s string, open int) (int, bool) {
	pos := open + len(fence)
	if len(s) >= pos+4 && strings.EqualFold(s[pos:pos+4], "json") {
		pos += 4
	}
	if pos < len(s) && !unicode.IsSpace(rune(s[pos])) && s[pos] != '[' {
		return 0, false
	}
	return pos, true
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && unicode.IsSpace(rune(s[pos])) {
		pos++
	}
	return pos
}

// scanArray finds the bracket closing the array that opens at start, skipping
// brackets inside JSON strings. It returns the offset just past it.
func scanArray(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return len(s), false
}

// GenreName returns the parenthetical genre name from a genre section's raw
// text, or "" when the heading has none.
func GenreName(raw string) string {
	match := genreNamePattern.FindStringSubmatch(raw)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
