package scout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
)

const (
	// DefaultGenre is used when neither the record nor its section names a genre.
	DefaultGenre = "Music"

	// PlaceholderImageURL is used when a record has no image.
	PlaceholderImageURL = "/placeholder.svg?height=300&width=500"

	longDateLayout = "January 2, 2006"
	clockLayout    = "3:04 PM"
)

var (
	isoDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	clockPattern   = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// Normalize converts a raw record into a display-ready Concert. index is the
// record's position within its section and genreName the genre recovered from
// the section heading, if any.
//
// Artist, venue, location, ticket URL and description pass through
// unchanged, empty or not. Every field except ID is a pure function of the
// arguments; the ID is unique per call and not stable across parses.
func Normalize(raw RawEvent, key SectionKey, index int, genreName string) Concert {
	return Concert{
		ID:          newConcertID(key, index),
		Artist:      string(raw.Name),
		Venue:       string(raw.VenueName),
		Location:    string(raw.CityName),
		Date:        FormatDate(string(raw.Date)),
		Time:        FormatTime(string(raw.Time)),
		Genre:       resolveGenre(string(raw.Genre), genreName),
		ImageURL:    resolveImage(string(raw.ImageURL)),
		TicketURL:   string(raw.URL),
		Description: string(raw.Description),
	}
}

// newConcertID composes the section prefix, the position and a time plus
// random token, e.g. "genre-0-1754438400000-6f1c...".
func newConcertID(key SectionKey, index int) string {
	return fmt.Sprintf("%s-%d-%d-%s", key.idPrefix(), index, time.Now().UnixMilli(), uuid.NewString())
}

// FormatDate renders a date as "August 6, 2025". YYYY-MM-DD input is built
// from its numeric components so no timezone shift can move the day; other
// formats go through a generic parser. Unparseable input is returned as is.
func FormatDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}

	if m := isoDatePattern.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(longDateLayout)
	}

	parsed, err := dateparse.ParseIn(trimmed, time.UTC)
	if err != nil {
		return value
	}
	return parsed.Format(longDateLayout)
}

// FormatTime converts a 24-hour "H:MM" or "H:MM:SS" clock to "6:00 PM".
// Anything else, including an empty value, is returned unchanged.
func FormatTime(value string) string {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return value
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return value
	}
	return time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC).Format(clockLayout)
}

func resolveGenre(genre, sectionGenre string) string {
	if strings.TrimSpace(genre) != "" {
		return genre
	}
	if strings.TrimSpace(sectionGenre) != "" {
		return sectionGenre
	}
	return DefaultGenre
}

func resolveImage(imageURL string) string {
	if strings.TrimSpace(imageURL) != "" {
		return imageURL
	}
	return PlaceholderImageURL
}
