// Package profile holds the style-guide configurations QC runs against.
package profile

// Profile is a named set of QC thresholds representing a broadcaster or
// streamer style guide. Every field is optional; a nil field disables the
// corresponding rule entirely.
type Profile struct {
	MinDurationSec  *float64        `json:"minDurationSec,omitempty"`
	MaxDurationSec  *float64        `json:"maxDurationSec,omitempty"`
	MaxLines        *int            `json:"maxLines,omitempty"`
	MaxCPL          *int            `json:"maxCpl,omitempty"`
	MinCPL          *int            `json:"minCpl,omitempty"`
	TargetCPS       *float64        `json:"targetCps,omitempty"`
	Ellipsis        *EllipsisPolicy `json:"ellipsis,omitempty"`
	DualSpeakerDash bool            `json:"dualSpeakerDash,omitempty"`
}

// EllipsisPolicy configures punctuation normalization for ellipses.
type EllipsisPolicy struct {
	Char                   string `json:"char,omitempty"`
	NoSpacesWithinSentence bool   `json:"noSpacesWithinSentence,omitempty"`
}

// Character to substitute for three dots; defaults to U+2026.
func (p *EllipsisPolicy) EllipsisChar() string {
	if p.Char == "" {
		return "…"
	}
	return p.Char
}

// Line count limit, defaulting to the two lines most players support.
func (p *Profile) MaxLinesOrDefault() int {
	if p.MaxLines != nil {
		return *p.MaxLines
	}
	return 2
}
