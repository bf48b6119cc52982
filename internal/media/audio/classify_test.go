package audio

import (
	"reflect"
	"testing"

	"tvb/internal/media/ffprobe"
)

func atmosStreams() []ffprobe.Stream {
	return []ffprobe.Stream{
		{Index: 0, CodecType: "video", CodecName: "h264"},
		{
			Index:     1,
			CodecType: "audio",
			CodecName: "eac3",
			Profile:   "Dolby Digital Plus + Dolby Atmos",
			Channels:  8,
			Tags:      map[string]string{"language": "eng"},
		},
		{
			Index:     2,
			CodecType: "audio",
			CodecName: "truehd",
			CodecLong: "TrueHD with Dolby Atmos",
			Channels:  8,
			Tags:      map[string]string{"language": "eng", "title": "TrueHD Atmos 7.1"},
		},
		{
			Index:     3,
			CodecType: "audio",
			CodecName: "aac",
			Channels:  2,
			Tags:      map[string]string{"language": "deu"},
		},
	}
}

func TestClassifyMarksObjectAudioTracks(t *testing.T) {
	tracks := Classify(atmosStreams(), true)
	if len(tracks) != 3 {
		t.Fatalf("expected 3 audio tracks, got %d", len(tracks))
	}
	if !tracks[0].Immersive || !tracks[1].Immersive {
		t.Fatalf("expected first two tracks immersive: %+v", tracks)
	}
	if tracks[2].Immersive {
		t.Fatal("stereo AAC track must not be immersive")
	}
	if got := ImmersivePositions(tracks); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("unexpected immersive positions: %v", got)
	}
}

func TestClassifyPositionsAreAudioRelative(t *testing.T) {
	tracks := Classify(atmosStreams(), true)
	for i, track := range tracks {
		if track.Position != i+1 {
			t.Fatalf("track %d has position %d", i, track.Position)
		}
	}
	if tracks[0].StreamIndex != 1 {
		t.Fatalf("expected container index preserved, got %d", tracks[0].StreamIndex)
	}
}

func TestClassifyDisabledMarksEverythingOrdinary(t *testing.T) {
	tracks := Classify(atmosStreams(), false)
	if HasImmersive(tracks) {
		t.Fatal("preservation disabled: no track may be immersive")
	}
}

func TestChannelCountAloneDoesNotQualify(t *testing.T) {
	streams := []ffprobe.Stream{
		{Index: 1, CodecType: "audio", CodecName: "dts", Channels: 8, ChannelLayout: "7.1"},
		{Index: 2, CodecType: "audio", CodecName: "pcm_s24le", Channels: 8},
	}
	tracks := Classify(streams, true)
	if HasImmersive(tracks) {
		t.Fatalf("7.1 without object metadata must stay ordinary: %+v", tracks)
	}
}

func TestObjectIndicatorWithoutObjectCodecDoesNotQualify(t *testing.T) {
	// A mislabeled AAC track mentioning Atmos in its title is not preservable.
	streams := []ffprobe.Stream{
		{Index: 1, CodecType: "audio", CodecName: "aac", Tags: map[string]string{"title": "Atmos downmix"}},
	}
	if HasImmersive(Classify(streams, true)) {
		t.Fatal("indicator without a joint-object-coding codec must not qualify")
	}
}

func TestJOCIndicatorInCodecLong(t *testing.T) {
	streams := []ffprobe.Stream{
		{Index: 1, CodecType: "audio", CodecName: "eac3", CodecLong: "ATSC A/52B (AC-3, E-AC-3) JOC", Channels: 6},
	}
	tracks := Classify(streams, true)
	if !tracks[0].Immersive {
		t.Fatal("expected JOC indicator to mark track immersive")
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	if tracks := Classify(nil, true); len(tracks) != 0 {
		t.Fatalf("expected no tracks, got %v", tracks)
	}
}
