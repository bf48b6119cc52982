package shellwords

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitBareTokens(t *testing.T) {
	got, err := Split("HandBrakeCLI --encoder x264 --quality 20")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"HandBrakeCLI", "--encoder", "x264", "--quality", "20"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitQuotedPaths(t *testing.T) {
	got, err := Split(`HandBrakeCLI --input "/media/My Movie (2010).mkv" --output '/out/My Movie (2010).mkv'`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"HandBrakeCLI",
		"--input", "/media/My Movie (2010).mkv",
		"--output", "/out/My Movie (2010).mkv",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitEqualsJoinedValueStaysOneToken(t *testing.T) {
	got, err := Split(`HandBrakeCLI --crop=0:132:0:0 --audio=1,2`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"HandBrakeCLI", "--crop=0:132:0:0", "--audio=1,2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitEmbeddedQuotes(t *testing.T) {
	got, err := Split(`--output "a \"quoted\" name.mkv" --title 'it''s'`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"--output", `a "quoted" name.mkv`, "--title", "its"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitGluedQuoteSegments(t *testing.T) {
	got, err := Split(`--output=/out/"with space"/file.mkv`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"--output=/out/with space/file.mkv"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitUnterminatedQuote(t *testing.T) {
	if _, err := Split(`--output "never closed`); !errors.Is(err, ErrUnterminatedQuote) {
		t.Fatalf("expected ErrUnterminatedQuote, got %v", err)
	}
	if _, err := Split(`--title 'half open`); !errors.Is(err, ErrUnterminatedQuote) {
		t.Fatalf("expected ErrUnterminatedQuote, got %v", err)
	}
}

func TestJoinMinimalQuoting(t *testing.T) {
	tokens := []string{"HandBrakeCLI", "--output", "/out/My Movie (2010).mkv", "--quality", "20"}
	got := Join(tokens)
	want := `HandBrakeCLI --output "/out/My Movie (2010).mkv" --quality 20`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJoinRoundTrips(t *testing.T) {
	tokens := []string{"--output", `a "b" c.mkv`, "--crop=0:0:0:0", "plain"}
	back, err := Split(Join(tokens))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, tokens) {
		t.Fatalf("round trip mismatch: %v vs %v", back, tokens)
	}
}

func TestQuoteEmptyToken(t *testing.T) {
	if got := Quote(""); got != `""` {
		t.Fatalf("got %q", got)
	}
}
