package subtitle

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var srtTimestampRegex = regexp.MustCompile(`^(\d+):(\d+):(\d+),(\d+)$`)

// ParseSRT parses SubRip text into a document. Blocks are separated by blank
// lines; an optional leading index line is discarded and cues are renumbered
// sequentially in document order. Blocks without a timing line are skipped.
func ParseSRT(text string) (*Document, error) {
	var cues []Cue

	for _, block := range splitBlocks(text) {
		lines := nonBlankLines(block)
		if len(lines) < 2 {
			continue
		}

		// first line may be the original index
		first := 0
		if isDigits(strings.TrimSpace(lines[0])) {
			first = 1
		}
		if first >= len(lines) {
			continue
		}

		timing := lines[first]
		if !strings.Contains(timing, "-->") {
			continue
		}

		parts := strings.SplitN(timing, "-->", 2)
		start, err := parseSRTTimestamp(parts[0])
		if err != nil {
			return nil, err
		}

		// trailing cue settings after the end time are ignored
		endFields := strings.Fields(parts[1])
		if len(endFields) == 0 {
			return nil, &TimestampError{Value: strings.TrimSpace(parts[1])}
		}
		end, err := parseSRTTimestamp(endFields[0])
		if err != nil {
			return nil, err
		}

		cues = append(cues, Cue{
			Index: len(cues) + 1,
			Start: start,
			End:   end,
			Lines: lines[first+1:],
		})
	}

	return &Document{Cues: cues, Format: FormatSRT}, nil
}

func parseSRTTimestamp(value string) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	matches := srtTimestampRegex.FindStringSubmatch(trimmed)
	if matches == nil {
		return 0, &TimestampError{Value: trimmed}
	}

	h, _ := strconv.Atoi(matches[1])
	m, _ := strconv.Atoi(matches[2])
	s, _ := strconv.Atoi(matches[3])
	ms, _ := strconv.Atoi(matches[4])

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// splitBlocks normalizes line endings and splits trimmed text on blank-line
// boundaries.
func splitBlocks(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.Split(strings.TrimSpace(text), "\n\n")
}

func nonBlankLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
