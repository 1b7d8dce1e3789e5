package subtitle

import "strings"

// Detect classifies raw subtitle text plus its filename into one of the
// supported formats. Extension wins over content sniffing; as a last resort
// anything with an arrow separator and a comma is assumed to be SRT.
func Detect(content, filename string) Format {
	name := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(name, ".srt"):
		return FormatSRT
	case strings.HasSuffix(name, ".vtt"),
		strings.Contains(head(content, 20), "WEBVTT"):
		return FormatVTT
	case strings.HasSuffix(name, ".xml"),
		strings.HasSuffix(name, ".ttml"),
		strings.Contains(head(content, 200), "<tt"):
		return FormatTTML
	case strings.HasSuffix(name, ".pac"):
		return FormatPAC
	case strings.Contains(content, "-->") && strings.Contains(content, ","):
		return FormatSRT
	default:
		return FormatUnknown
	}
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
