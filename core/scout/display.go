package scout

import "strings"

// DefaultShowTime is displayed for concerts without a start time.
const DefaultShowTime = "8:00 PM"

// ApplyDisplayDefaults is the presentation step run just before rendering. It
// fills a missing time with DefaultShowTime, a missing genre with the genre
// section's name (TopGenre only) or DefaultGenre, and a missing image with
// PlaceholderImageURL. The input is left untouched.
func ApplyDisplayDefaults(result ParseResult) ParseResult {
	out := result
	for _, key := range SectionKeys() {
		genre := DefaultGenre
		if key == TopGenre && strings.TrimSpace(result.TopGenreName) != "" {
			genre = result.TopGenreName
		}

		src := result.Section(key)
		concerts := make([]Concert, len(src))
		for i, concert := range src {
			if strings.TrimSpace(concert.Time) == "" {
				concert.Time = DefaultShowTime
			}
			if strings.TrimSpace(concert.Genre) == "" {
				concert.Genre = genre
			}
			if strings.TrimSpace(concert.ImageURL) == "" {
				concert.ImageURL = PlaceholderImageURL
			}
			concerts[i] = concert
		}
		out.setSection(key, concerts)
	}
	return out
}
