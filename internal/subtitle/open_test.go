package subtitle

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadDispatchesByFormat(t *testing.T) {
	srt := "1\n00:00:01,000 --> 00:00:02,000\nHi\n"
	doc, err := Load(srt, "file.srt")
	if err != nil {
		t.Fatalf("Load srt failed: %v", err)
	}
	if doc.Format != FormatSRT || len(doc.Cues) != 1 {
		t.Errorf("unexpected document %+v", doc)
	}

	vtt := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHi\n"
	doc, err = Load(vtt, "file.vtt")
	if err != nil {
		t.Fatalf("Load vtt failed: %v", err)
	}
	if doc.Format != FormatVTT {
		t.Errorf("expected vtt, got %s", doc.Format)
	}

	ttml := `<tt xmlns="http://www.w3.org/ns/ttml"><body><p begin="1s" end="2s">Hi</p></body></tt>`
	doc, err = Load(ttml, "file.ttml")
	if err != nil {
		t.Fatalf("Load ttml failed: %v", err)
	}
	if doc.Format != FormatTTML {
		t.Errorf("expected ttml, got %s", doc.Format)
	}
}

func TestLoadRejectsPAC(t *testing.T) {
	_, err := Load("binary", "captions.pac")
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if !strings.Contains(err.Error(), "convert to SRT/VTT/TTML") {
		t.Errorf("error should instruct conversion, got %q", err.Error())
	}
}

func TestLoadRejectsUnknown(t *testing.T) {
	_, err := Load("no recognizable structure", "mystery.bin")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
