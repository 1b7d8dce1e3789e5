package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/qc"
)

func TestRender(t *testing.T) {
	var sb strings.Builder
	err := Render(&sb, Data{
		ProfileName: "Netflix-SV",
		Issues: []qc.Issue{
			{Type: "cps-high", Severity: qc.SeverityWarning, CueIndex: 3, TimeMs: 1500, Message: "CPS 20.0 > target 17"},
		},
		Metrics: qc.Metrics{AvgCPS: 12.34, Count: 10, OverCPS: 1},
		Sources: []string{"https://example.com/styleguide"},
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	html := sb.String()
	for _, want := range []string{
		"Netflix-SV",
		"cps-high",
		"CPS 20.0 &gt; target 17",
		"12.34",
		"https://example.com/styleguide",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderEscapesContent(t *testing.T) {
	var sb strings.Builder
	err := Render(&sb, Data{
		ProfileName: "<script>alert(1)</script>",
		Metrics:     qc.Metrics{},
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(sb.String(), "<script>alert(1)</script>") {
		t.Error("profile name was not escaped")
	}
}

func TestRenderCapsIssues(t *testing.T) {
	issues := make([]qc.Issue, 250)
	for i := range issues {
		issues[i] = qc.Issue{
			Type:     "cpl-exceeded",
			Severity: qc.SeverityWarning,
			CueIndex: i + 1,
			Message:  fmt.Sprintf("issue %d", i+1),
		}
	}

	var sb strings.Builder
	if err := Render(&sb, Data{ProfileName: "SVT-SE", Issues: issues}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	html := sb.String()
	if !strings.Contains(html, "issue 200") {
		t.Error("expected issue 200 in report")
	}
	if strings.Contains(html, "issue 201") {
		t.Error("issues beyond 200 must be dropped")
	}
}

func TestRenderDoesNotTruncateCallerSlice(t *testing.T) {
	issues := make([]qc.Issue, 250)
	var sb strings.Builder
	if err := Render(&sb, Data{Issues: issues}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(issues) != 250 {
		t.Errorf("caller slice length changed to %d", len(issues))
	}
}
