package subtitle

import (
	"strings"
	"time"
)

// represents single timed caption entry
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Lines []string
}

// display text with lines joined by a line break
func (c *Cue) Text() string {
	return strings.Join(c.Lines, "\n")
}

// on-screen duration, never negative
func (c *Cue) Duration() time.Duration {
	if c.End <= c.Start {
		return 0
	}
	return c.End - c.Start
}

// represents complete subtitle track
type Document struct {
	Cues   []Cue
	Format Format
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT     Format = "srt"
	FormatVTT     Format = "vtt"
	FormatTTML    Format = "ttml"
	FormatPAC     Format = "pac"
	FormatUnknown Format = "unknown"
)
