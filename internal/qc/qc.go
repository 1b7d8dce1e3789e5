// Package qc evaluates a subtitle document against a style-guide profile.
package qc

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/profile"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/subtitle"
)

// Severity grades how serious an issue is.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is one rule violation on one cue.
type Issue struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	CueIndex int      `json:"index"`
	Line     int      `json:"line,omitempty"`
	TimeMs   int64    `json:"time"`
	Message  string   `json:"message"`
}

// Metrics summarizes a whole QC run.
type Metrics struct {
	AvgCPS  float64 `json:"avgCPS"`
	Count   int     `json:"count"`
	OverCPS int     `json:"overCPS"`
}

// Evaluate runs every rule the profile enables over every cue. It never
// mutates the document; rules are independent, so one cue can emit several
// issues.
func Evaluate(doc *subtitle.Document, prof *profile.Profile) ([]Issue, Metrics) {
	var issues []Issue
	totalChars := 0
	totalDuration := int64(0)
	overCPS := 0

	for i := range doc.Cues {
		cue := &doc.Cues[i]
		text := cue.Text()
		durationMs := cue.Duration().Milliseconds()
		startMs := cue.Start.Milliseconds()

		totalChars += utf8.RuneCountInString(text)
		totalDuration += durationMs

		if prof.MinDurationSec != nil && float64(durationMs) < *prof.MinDurationSec*1000 {
			issues = append(issues, Issue{
				Type:     "duration-too-short",
				Severity: SeverityWarning,
				CueIndex: cue.Index,
				TimeMs:   startMs,
				Message:  fmt.Sprintf("Duration %dms below %gs", durationMs, *prof.MinDurationSec),
			})
		}
		if prof.MaxDurationSec != nil && float64(durationMs) > *prof.MaxDurationSec*1000 {
			issues = append(issues, Issue{
				Type:     "duration-too-long",
				Severity: SeverityWarning,
				CueIndex: cue.Index,
				TimeMs:   startMs,
				Message:  fmt.Sprintf("Duration %dms above %gs", durationMs, *prof.MaxDurationSec),
			})
		}

		if maxLines := prof.MaxLinesOrDefault(); len(cue.Lines) > maxLines {
			issues = append(issues, Issue{
				Type:     "too-many-lines",
				Severity: SeverityError,
				CueIndex: cue.Index,
				TimeMs:   startMs,
				Message:  fmt.Sprintf("%d lines (max %d)", len(cue.Lines), maxLines),
			})
		}

		for li, line := range cue.Lines {
			length := utf8.RuneCountInString(line)
			if prof.MaxCPL != nil && length > *prof.MaxCPL {
				issues = append(issues, Issue{
					Type:     "cpl-exceeded",
					Severity: SeverityWarning,
					CueIndex: cue.Index,
					Line:     li + 1,
					TimeMs:   startMs,
					Message:  fmt.Sprintf("%d > %d chars", length, *prof.MaxCPL),
				})
			}
			// imbalance signal, only meaningful on two-line cues
			if prof.MinCPL != nil && length < *prof.MinCPL && len(cue.Lines) == 2 {
				issues = append(issues, Issue{
					Type:     "cpl-low",
					Severity: SeverityInfo,
					CueIndex: cue.Index,
					Line:     li + 1,
					TimeMs:   startMs,
					Message:  fmt.Sprintf("%d < %d chars (balance lines if possible)", length, *prof.MinCPL),
				})
			}
		}

		if prof.TargetCPS != nil {
			cps := CPS(strings.ReplaceAll(text, "\n", " "), cue.Duration().Milliseconds())
			if cps > *prof.TargetCPS {
				overCPS++
				issues = append(issues, Issue{
					Type:     "cps-high",
					Severity: SeverityWarning,
					CueIndex: cue.Index,
					TimeMs:   startMs,
					Message:  fmt.Sprintf("CPS %.1f > target %g", cps, *prof.TargetCPS),
				})
			}
		}

		if prof.Ellipsis != nil && strings.Contains(text, "...") {
			issues = append(issues, Issue{
				Type:     "ellipsis-three-dots",
				Severity: SeverityInfo,
				CueIndex: cue.Index,
				TimeMs:   startMs,
				Message:  "Use single ellipsis character … (U+2026)",
			})
		}

		// fires only when neither line carries the marker
		if prof.DualSpeakerDash && len(cue.Lines) == 2 &&
			!startsWithDash(cue.Lines[0]) && !startsWithDash(cue.Lines[1]) {
			issues = append(issues, Issue{
				Type:     "missing-dual-speaker-dash",
				Severity: SeverityInfo,
				CueIndex: cue.Index,
				TimeMs:   startMs,
				Message:  "Add hyphen at start of each line for two speakers",
			})
		}
	}

	avgCPS := 0.0
	if totalDuration > 0 {
		avgCPS = math.Round(float64(totalChars)/(float64(totalDuration)/1000)*100) / 100
	}

	return issues, Metrics{
		AvgCPS:  avgCPS,
		Count:   len(doc.Cues),
		OverCPS: overCPS,
	}
}

// CPS computes the reading speed of a text shown for the given duration.
// Zero or negative durations read as infinitely fast.
func CPS(text string, durationMs int64) float64 {
	if durationMs <= 0 {
		return math.Inf(1)
	}
	return float64(utf8.RuneCountInString(text)) / (float64(durationMs) / 1000)
}

func startsWithDash(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "-")
}
