package subtitle

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		filename string
		want     Format
	}{
		{"srt extension", "anything", "movie.srt", FormatSRT},
		{"srt extension uppercase", "anything", "MOVIE.SRT", FormatSRT},
		{"vtt extension", "anything", "movie.vtt", FormatVTT},
		{"vtt marker", "WEBVTT\n\n00:01.000 --> 00:02.000\nHi", "noext", FormatVTT},
		{"vtt marker too deep", "padding padding padding WEBVTT", "noext", FormatUnknown},
		{"ttml extension", "anything", "movie.ttml", FormatTTML},
		{"xml extension", "anything", "movie.xml", FormatTTML},
		{"tt tag", "<?xml version=\"1.0\"?>\n<tt xmlns=\"http://www.w3.org/ns/ttml\">", "noext", FormatTTML},
		{"pac extension", "binarygarbage", "movie.pac", FormatPAC},
		{"srt guess", "1\n00:00:01,000 --> 00:00:02,000\nHi", "upload", FormatSRT},
		{"arrow without comma", "00:00:01.000 --> 00:00:02.000", "upload", FormatUnknown},
		{"empty", "", "", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.content, tt.filename)
			if got != tt.want {
				t.Errorf("Detect(%q, %q) = %v, want %v", tt.content, tt.filename, got, tt.want)
			}
		})
	}
}

func TestDetectExtensionWinsOverContent(t *testing.T) {
	// an SRT payload uploaded with a .vtt name follows the extension
	content := "1\n00:00:01,000 --> 00:00:02,000\nHi\n"
	if got := Detect(content, "renamed.vtt"); got != FormatVTT {
		t.Errorf("expected vtt, got %v", got)
	}
}
