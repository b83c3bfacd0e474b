package scout

import "testing"

func TestApplyDisplayDefaults(t *testing.T) {
	input := newParseResult()
	input.TopGenreName = "Country"
	input.TopGenre = []Concert{{Artist: "G"}}
	input.TopArtists = []Concert{{Artist: "A", Time: "6:00 PM", Genre: "Pop", ImageURL: "https://img.example.com/a.jpg"}}
	input.RelatedArtists = []Concert{{Artist: "R"}}

	got := ApplyDisplayDefaults(input)

	if c := got.TopGenre[0]; c.Time != DefaultShowTime || c.Genre != "Country" || c.ImageURL != PlaceholderImageURL {
		t.Errorf("genre defaults not applied: %+v", c)
	}
	if c := got.TopArtists[0]; c.Time != "6:00 PM" || c.Genre != "Pop" || c.ImageURL != "https://img.example.com/a.jpg" {
		t.Errorf("present values overwritten: %+v", c)
	}
	if c := got.RelatedArtists[0]; c.Genre != DefaultGenre {
		t.Errorf("related genre = %q, want %q", c.Genre, DefaultGenre)
	}

	if input.TopGenre[0].Time != "" || input.RelatedArtists[0].Genre != "" {
		t.Errorf("input was modified: %+v", input)
	}
}

func TestApplyDisplayDefaults_EmptySections(t *testing.T) {
	got := ApplyDisplayDefaults(newParseResult())
	for _, key := range SectionKeys() {
		if got.Section(key) == nil {
			t.Errorf("%s: nil slice", key)
		}
	}
}
