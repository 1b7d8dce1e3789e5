// Package qcfix applies the deterministic, profile-scoped subset of
// corrections that never alter dialogue meaning.
package qcfix

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/profile"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/subtitle"
)

// ChangeRecord names the fixes applied to one cue, in application order.
type ChangeRecord struct {
	CueIndex int      `json:"index"`
	Applied  []string `json:"applied"`
}

// Apply mutates cues in place and returns one record per changed cue.
// Each fix is gated by its profile field and idempotent: re-running over an
// already fixed document yields no further records.
func Apply(doc *subtitle.Document, prof *profile.Profile) []ChangeRecord {
	var ellipsisSpacing *regexp.Regexp
	if prof.Ellipsis != nil && prof.Ellipsis.NoSpacesWithinSentence {
		ellipsisSpacing = regexp.MustCompile(
			`\s*` + regexp.QuoteMeta(prof.Ellipsis.EllipsisChar()) + `\s*`,
		)
	}

	var changes []ChangeRecord
	for i := range doc.Cues {
		cue := &doc.Cues[i]
		var applied []string

		applied = appendFix(applied, clampMinDuration(cue, prof))
		applied = appendFix(applied, clampMaxDuration(cue, prof))
		applied = appendFix(applied, reflowLines(cue, prof))
		applied = appendFix(applied, normalizeEllipsis(cue, prof, ellipsisSpacing))
		applied = appendFix(applied, insertSpeakerDashes(cue, prof))

		if len(applied) > 0 {
			changes = append(changes, ChangeRecord{
				CueIndex: cue.Index,
				Applied:  applied,
			})
		}
	}
	return changes
}

func appendFix(applied []string, tag string) []string {
	if tag == "" {
		return applied
	}
	return append(applied, tag)
}

func clampMinDuration(cue *subtitle.Cue, prof *profile.Profile) string {
	if prof.MinDurationSec == nil {
		return ""
	}
	floor := secondsToDuration(*prof.MinDurationSec)
	if cue.Duration() >= floor {
		return ""
	}
	cue.End = cue.Start + floor
	return "duration-min"
}

func clampMaxDuration(cue *subtitle.Cue, prof *profile.Profile) string {
	if prof.MaxDurationSec == nil {
		return ""
	}
	ceiling := secondsToDuration(*prof.MaxDurationSec)
	if cue.Duration() <= ceiling {
		return ""
	}
	cue.End = cue.Start + ceiling
	return "duration-max"
}

// reflowLines wraps every line longer than maxCpl at the last space at or
// before the limit, hard-cutting tokens that have no space. If wrapping
// yields more than two lines, the tail is joined into a single second line,
// which may itself exceed the limit again; that trade-off is accepted so a
// cue never grows past two lines.
func reflowLines(cue *subtitle.Cue, prof *profile.Profile) string {
	if prof.MaxCPL == nil {
		return ""
	}
	maxCPL := *prof.MaxCPL

	var wrapped []string
	for _, line := range cue.Lines {
		remaining := []rune(line)
		for len(remaining) > maxCPL {
			cut := lastSpaceBefore(remaining, maxCPL)
			if cut < 0 {
				cut = maxCPL
			}
			segment := strings.TrimRight(string(remaining[:cut]), " \t")
			if segment != "" {
				wrapped = append(wrapped, segment)
			}
			remaining = []rune(strings.TrimLeft(string(remaining[cut:]), " \t"))
		}
		wrapped = append(wrapped, string(remaining))
	}

	if len(wrapped) > 2 {
		wrapped = []string{wrapped[0], strings.Join(wrapped[1:], " ")}
	}

	if slices.Equal(wrapped, cue.Lines) {
		return ""
	}
	cue.Lines = wrapped
	return "wrap-cpl"
}

// lastSpaceBefore finds the rightmost space at index <= limit, or -1.
func lastSpaceBefore(runes []rune, limit int) int {
	for i := limit; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}

func normalizeEllipsis(cue *subtitle.Cue, prof *profile.Profile, spacing *regexp.Regexp) string {
	if prof.Ellipsis == nil {
		return ""
	}
	desired := prof.Ellipsis.EllipsisChar()

	text := cue.Text()
	fixed := strings.ReplaceAll(text, "...", desired)
	if spacing != nil {
		fixed = spacing.ReplaceAllString(fixed, desired)
	}
	if fixed == text {
		return ""
	}
	cue.Lines = strings.Split(fixed, "\n")
	return "ellipsis"
}

func insertSpeakerDashes(cue *subtitle.Cue, prof *profile.Profile) string {
	if !prof.DualSpeakerDash || len(cue.Lines) != 2 {
		return ""
	}
	changed := false
	for i, line := range cue.Lines {
		if strings.HasPrefix(strings.TrimSpace(line), "-") {
			continue
		}
		cue.Lines[i] = "- " + strings.TrimLeft(line, " \t")
		changed = true
	}
	if !changed {
		return ""
	}
	return "dual-dash"
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}
