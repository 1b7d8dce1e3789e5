// Package report renders QC results as a standalone HTML document.
package report

import (
	"html/template"
	"io"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/qc"
)

// issue tables are capped so a pathological file cannot produce an
// unbounded report
const maxReportedIssues = 200

var reportTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>QC Report</title>
<style>body{font-family:system-ui,Segoe UI,Arial,sans-serif} table{border-collapse:collapse;width:100%} td,th{border:1px solid #ccc;padding:6px} th{background:#f5f5f5}</style>
</head>
<body>
<h1>QC Report &ndash; {{.ProfileName}}</h1>
<p><b>Count:</b> {{.Metrics.Count}} &nbsp; <b>Avg CPS:</b> {{.Metrics.AvgCPS}} &nbsp; <b>Over CPS:</b> {{.Metrics.OverCPS}}</p>
<h2>Issues</h2>
<table><tr><th>Severity</th><th>Type</th><th>#</th><th>Time (ms)</th><th>Message</th></tr>
{{range .Issues}}<tr><td>{{.Severity}}</td><td>{{.Type}}</td><td>{{.CueIndex}}</td><td>{{.TimeMs}}</td><td>{{.Message}}</td></tr>
{{end}}</table>
<h2>Guidelines referenced</h2>
<ul>{{range .Sources}}<li><a href="{{.}}" target="_blank">{{.}}</a></li>{{end}}</ul>
</body></html>
`))

// Data feeds the report template.
type Data struct {
	ProfileName string
	Issues      []qc.Issue
	Metrics     qc.Metrics
	Sources     []string
}

// Render writes the HTML report for one QC run.
func Render(w io.Writer, data Data) error {
	if len(data.Issues) > maxReportedIssues {
		data.Issues = data.Issues[:maxReportedIssues]
	}
	return reportTemplate.Execute(w, data)
}
