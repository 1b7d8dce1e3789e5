package subtitle

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var vttTimestampRegex = regexp.MustCompile(`^(?:(\d+):)?(\d+):(\d+)(?:\.(\d+))?$`)

// ParseVTT parses WebVTT text into a document. Header, NOTE and STYLE lines
// are dropped; within a block the timing line may be preceded by one cue-id
// line, and cue settings after the end time are ignored. Blocks without a
// timing line are skipped.
func ParseVTT(text string) (*Document, error) {
	var cues []Cue

	for _, block := range splitBlocks(stripVTTHeader(text)) {
		lines := nonBlankLines(block)
		if len(lines) == 0 {
			continue
		}

		// timing line is the first or second line; an optional cue id may
		// precede it
		timingAt := -1
		for i := 0; i < len(lines) && i < 2; i++ {
			if strings.Contains(lines[i], "-->") {
				timingAt = i
				break
			}
		}
		if timingAt < 0 {
			continue
		}

		parts := strings.SplitN(lines[timingAt], "-->", 2)
		start, err := parseVTTTimestamp(parts[0])
		if err != nil {
			return nil, err
		}
		end, err := parseVTTTimestamp(parts[1])
		if err != nil {
			return nil, err
		}

		cues = append(cues, Cue{
			Index: len(cues) + 1,
			Start: start,
			End:   end,
			Lines: lines[timingAt+1:],
		})
	}

	return &Document{Cues: cues, Format: FormatVTT}, nil
}

// stripVTTHeader removes the WEBVTT signature plus NOTE and STYLE blocks,
// leaving only cue blocks behind.
func stripVTTHeader(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimPrefix(text, "\ufeff")

	var kept []string
	skipBlock := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if skipBlock {
			if trimmed == "" {
				skipBlock = false
				kept = append(kept, line)
			}
			continue
		}
		if strings.HasPrefix(trimmed, "WEBVTT") {
			continue
		}
		if strings.HasPrefix(trimmed, "NOTE") || strings.HasPrefix(trimmed, "STYLE") {
			skipBlock = true
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// parseVTTTimestamp accepts HH:MM:SS.mmm and MM:SS.mmm; a missing sub-second
// component defaults to 000, and fractional digits beyond three are dropped.
func parseVTTTimestamp(value string) (time.Duration, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, &TimestampError{Value: strings.TrimSpace(value)}
	}

	// cue settings trail the end time after whitespace
	stamp := fields[0]
	matches := vttTimestampRegex.FindStringSubmatch(stamp)
	if matches == nil {
		return 0, &TimestampError{Value: stamp}
	}

	h := 0
	if matches[1] != "" {
		h, _ = strconv.Atoi(matches[1])
	}
	m, _ := strconv.Atoi(matches[2])
	s, _ := strconv.Atoi(matches[3])
	ms := parseMillis(matches[4])

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// parseMillis pads or truncates a fractional-second field to milliseconds.
func parseMillis(frac string) int {
	padded := (frac + "000")[:3]
	ms, _ := strconv.Atoi(padded)
	return ms
}
