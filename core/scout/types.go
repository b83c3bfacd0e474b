package scout

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionKey identifies one of the three concert categories.
type SectionKey int

const (
	TopArtists SectionKey = iota
	TopGenre
	RelatedArtists

	sectionCount = 3
)

// SectionKeys lists the categories in display order.
func SectionKeys() []SectionKey {
	return []SectionKey{TopArtists, TopGenre, RelatedArtists}
}

// String returns the key as it appears in the wire format.
func (k SectionKey) String() string {
	switch k {
	case TopArtists:
		return "topArtists"
	case TopGenre:
		return "topGenre"
	case RelatedArtists:
		return "relatedArtists"
	default:
		return fmt.Sprintf("SectionKey(%d)", int(k))
	}
}

// idPrefix is the leading component of concert identities in this section.
func (k SectionKey) idPrefix() string {
	switch k {
	case TopArtists:
		return "artists"
	case TopGenre:
		return "genre"
	case RelatedArtists:
		return "related"
	default:
		return "section"
	}
}

// Text is a loosely typed JSON scalar. Models emit strings most of the time
// but occasionally numbers, booleans or null; all of them decode to text.
type Text string

// UnmarshalJSON accepts any JSON scalar. Objects and arrays are rejected.
func (t *Text) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*t = ""
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case trimmed == "true" || trimmed == "false":
		*t = Text(trimmed)
		return nil
	case strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "["):
		return fmt.Errorf("expected a scalar, got %s", trimmed[:1])
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = Text(n.String())
		return nil
	}
}

// RawEvent is one concert record as emitted by the model, before
// normalization. Any field may be missing or empty.
type RawEvent struct {
	Name        Text `json:"name"`
	VenueName   Text `json:"venue_name"`
	CityName    Text `json:"city_name"`
	Date        Text `json:"date"`
	Time        Text `json:"time"`
	URL         Text `json:"url"`
	Genre       Text `json:"genre"`
	ImageURL    Text `json:"image_url"`
	Description Text `json:"description"`
}

// Concert is a normalized, display-ready concert record.
type Concert struct {
	ID          string `json:"id"`
	Artist      string `json:"artist"`
	Venue       string `json:"venue"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Genre       string `json:"genre,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	TicketURL   string `json:"ticketUrl"`
	Description string `json:"description"`
}

// AISections holds the commentary the model wrote for each section.
type AISections struct {
	TopArtistsText     string `json:"topArtistsText"`
	TopGenreText       string `json:"topGenreText"`
	RelatedArtistsText string `json:"relatedArtistsText"`
}

// Text returns the commentary for key.
func (a AISections) Text(key SectionKey) string {
	switch key {
	case TopArtists:
		return a.TopArtistsText
	case TopGenre:
		return a.TopGenreText
	case RelatedArtists:
		return a.RelatedArtistsText
	default:
		return ""
	}
}

func (a *AISections) set(key SectionKey, text string) {
	switch key {
	case TopArtists:
		a.TopArtistsText = text
	case TopGenre:
		a.TopGenreText = text
	case RelatedArtists:
		a.RelatedArtistsText = text
	}
}

// ParseResult is the outcome of parsing one model response. The three concert
// slices are never nil.
type ParseResult struct {
	TopArtists         []Concert  `json:"topArtists"`
	TopGenre           []Concert  `json:"topGenre"`
	RelatedArtists     []Concert  `json:"relatedArtists"`
	AISections         AISections `json:"aiSections"`
	TopGenreName       string     `json:"topGenreName,omitempty"`
	IsFollowUpQuestion bool       `json:"isFollowUpQuestion,omitempty"`
	FollowUpMessage    string     `json:"followUpMessage,omitempty"`

	Classification Classification `json:"-"`
}

func newParseResult() ParseResult {
	return ParseResult{
		TopArtists:     []Concert{},
		TopGenre:       []Concert{},
		RelatedArtists: []Concert{},
	}
}

// Section returns the concerts recovered for key.
func (r ParseResult) Section(key SectionKey) []Concert {
	switch key {
	case TopArtists:
		return r.TopArtists
	case TopGenre:
		return r.TopGenre
	case RelatedArtists:
		return r.RelatedArtists
	default:
		return nil
	}
}

func (r *ParseResult) setSection(key SectionKey, concerts []Concert) {
	switch key {
	case TopArtists:
		r.TopArtists = concerts
	case TopGenre:
		r.TopGenre = concerts
	case RelatedArtists:
		r.RelatedArtists = concerts
	}
}

// Total returns the number of concerts across all sections.
func (r ParseResult) Total() int {
	return len(r.TopArtists) + len(r.TopGenre) + len(r.RelatedArtists)
}

// HasResults reports whether any section holds at least one concert. A
// structured response without results is the caller's "no concerts found"
// state.
func (r ParseResult) HasResults() bool {
	return r.Total() > 0
}
