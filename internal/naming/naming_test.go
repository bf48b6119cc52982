package naming

import "testing"

func TestDetectSeasonEpisode(t *testing.T) {
	cases := []string{
		"Friends - S01E01 - Pilot.mkv",
		"homeland.S01E01.mp4",
		"Show Name s2e13.avi",
		"show_name_S10E103_title.mkv",
		"The Expanse - s01e01.m4v",
	}
	for _, name := range cases {
		if got := Detect(name); got != FormatTVShow {
			t.Fatalf("Detect(%q) = %q, want tvshow", name, got)
		}
	}
}

func TestDetectMovieYear(t *testing.T) {
	cases := []string{
		"Inception (2010).mkv",
		"The Matrix (1999).mp4",
		"Blade.Runner.(1982).mkv",
	}
	for _, name := range cases {
		if got := Detect(name); got != FormatMovie {
			t.Fatalf("Detect(%q) = %q, want movie", name, got)
		}
	}
}

func TestDetectFallbackCustom(t *testing.T) {
	cases := []string{
		"testvideo.mp4",
		"holiday_recording.mov",
		"2024 highlights.mkv",
	}
	for _, name := range cases {
		if got := Detect(name); got != FormatCustom {
			t.Fatalf("Detect(%q) = %q, want custom", name, got)
		}
	}
}

func TestSeasonEpisodeTakesPrecedenceOverYear(t *testing.T) {
	got := Parse("Show (2020) - S02E05 - Title.mkv")
	if got.Format != FormatTVShow {
		t.Fatalf("expected tvshow, got %q", got.Format)
	}
	if got.Season != 2 || got.Episode != 5 {
		t.Fatalf("unexpected season/episode: %d/%d", got.Season, got.Episode)
	}
}

func TestParseExtractsComponents(t *testing.T) {
	parsed := Parse("Friends - S01E01 - Pilot.mkv")
	if parsed.Show != "Friends" {
		t.Fatalf("unexpected show: %q", parsed.Show)
	}
	if parsed.Season != 1 || parsed.Episode != 1 {
		t.Fatalf("unexpected season/episode: %d/%d", parsed.Season, parsed.Episode)
	}

	movie := Parse("Inception (2010).mkv")
	if movie.Title != "Inception" || movie.Year != "2010" {
		t.Fatalf("unexpected movie parse: %+v", movie)
	}
}

func TestParseFormatOverride(t *testing.T) {
	for _, valid := range []string{"movie", "tvshow", "custom"} {
		if _, ok := ParseFormat(valid); !ok {
			t.Fatalf("expected %q to parse", valid)
		}
	}
	for _, invalid := range []string{"Movie", "TVSHOW", "preview", "", "mov"} {
		if _, ok := ParseFormat(invalid); ok {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	name := "Friends - S01E01 - Pilot.mkv"
	first := Detect(name)
	for i := 0; i < 10; i++ {
		if got := Detect(name); got != first {
			t.Fatalf("Detect varied across runs: %q vs %q", first, got)
		}
	}
}

func TestDisplayTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/media/inception (2010).mkv", "Inception (2010)"},
		{"some_home.video.mp4", "Some Home Video"},
		{"", "Unknown"},
	}
	for _, tc := range cases {
		if got := DisplayTitle(tc.in); got != tc.want {
			t.Fatalf("DisplayTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
