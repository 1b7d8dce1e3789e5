package subtitle

import (
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ParseTTML parses Timed Text Markup Language into a document. Tag names are
// compared namespace-agnostically; every p element carrying both begin and
// end attributes becomes one cue, with embedded br elements preserved as
// line breaks.
func ParseTTML(text string) (*Document, error) {
	decoder := xml.NewDecoder(strings.NewReader(text))
	var cues []Cue
	sawElement := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &StructureError{Err: err}
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		sawElement = true
		if start.Name.Local != "p" {
			continue
		}

		// paragraphs without both begin and end are skipped; their children
		// are still scanned for timed paragraphs
		begin, end, ok := cueTiming(start)
		if !ok {
			continue
		}

		lines, err := collectLines(decoder)
		if err != nil {
			return nil, &StructureError{Err: err}
		}

		startTime, err := parseTTMLClock(begin)
		if err != nil {
			return nil, err
		}
		endTime, err := parseTTMLClock(end)
		if err != nil {
			return nil, err
		}

		cues = append(cues, Cue{
			Index: len(cues) + 1,
			Start: startTime,
			End:   endTime,
			Lines: lines,
		})
	}

	// text without a single element is not markup at all
	if !sawElement {
		return nil, &StructureError{Err: errors.New("no root element found")}
	}

	return &Document{Cues: cues, Format: FormatTTML}, nil
}

func cueTiming(el xml.StartElement) (begin, end string, ok bool) {
	for _, attr := range el.Attr {
		switch attr.Name.Local {
		case "begin":
			begin = attr.Value
		case "end":
			end = attr.Value
		}
	}
	return begin, end, begin != "" && end != ""
}

// collectLines gathers all descendant text of the current p element,
// splitting on br elements and collapsing whitespace runs to single spaces.
func collectLines(decoder *xml.Decoder) ([]string, error) {
	var lines []string
	var current strings.Builder
	depth := 0

	flush := func() {
		line := strings.TrimSpace(
			whitespaceRun.ReplaceAllString(current.String(), " "),
		)
		if line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "br" {
				flush()
			}
			depth++
		case xml.EndElement:
			if depth == 0 {
				flush()
				return lines, nil
			}
			depth--
		case xml.CharData:
			current.Write(t)
		}
	}
}

// parseTTMLClock accepts the four clock shapes used by TTML documents:
// seconds with a trailing s suffix, HH:MM:SS with optional fraction,
// SS.mmm, and bare seconds. All are truncated to millisecond precision.
func parseTTMLClock(value string) (time.Duration, error) {
	clock := strings.TrimSpace(value)

	switch {
	case strings.HasSuffix(clock, "s") && !strings.Contains(clock, ":"):
		seconds, err := strconv.ParseFloat(strings.TrimSuffix(clock, "s"), 64)
		if err != nil {
			return 0, &TimestampError{Value: clock}
		}
		return time.Duration(seconds*1000) * time.Millisecond, nil

	case strings.Contains(clock, ":"):
		parts := strings.Split(clock, ":")
		if len(parts) != 3 {
			return 0, &TimestampError{Value: clock}
		}
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return 0, &TimestampError{Value: clock}
		}
		sec := parts[2]
		frac := ""
		if dot := strings.IndexByte(sec, '.'); dot >= 0 {
			frac = sec[dot+1:]
			sec = sec[:dot]
		}
		s, err := strconv.Atoi(sec)
		if err != nil {
			return 0, &TimestampError{Value: clock}
		}
		return time.Duration(h)*time.Hour +
			time.Duration(m)*time.Minute +
			time.Duration(s)*time.Second +
			time.Duration(parseMillis(frac))*time.Millisecond, nil

	default:
		seconds, err := strconv.ParseFloat(clock, 64)
		if err != nil {
			return 0, &TimestampError{Value: clock}
		}
		return time.Duration(seconds*1000) * time.Millisecond, nil
	}
}
