package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/profile"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/qc"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/report"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/subtitle"
)

var checkCmd = &cobra.Command{
	Use:   "check [subtitle_file]",
	Short: "Validate a subtitle file against a style-guide profile",
	Long: `Validate a subtitle file against a style-guide profile and print the
issues found.

The exit code is non-zero when any error-severity issue is present.

Examples:
  subqc check episode.srt
  subqc check episode.vtt --profile SVT-SE
  subqc check episode.ttml --profile NRK-NO --json
  subqc check episode.srt --report report.html`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().
		StringP("profile", "p", "Netflix-SV", "Profile name from the catalog")
	checkCmd.Flags().
		Bool("json", false, "Print issues and metrics as JSON")
	checkCmd.Flags().
		String("report", "", "Write an HTML report to this path")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	profileName, _ := cmd.Flags().GetString("profile")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	reportPath, _ := cmd.Flags().GetString("report")

	catalog, err := profile.LoadCatalog()
	if err != nil {
		return err
	}
	prof, err := catalog.Get(profileName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read subtitle file: %w", err)
	}

	logger.Infow("Checking subtitle file",
		"file", path,
		"profile", profileName,
	)

	doc, err := subtitle.Load(string(data), path)
	if err != nil {
		return err
	}

	logger.Infow("Parsed subtitle file",
		"format", doc.Format,
		"cues", len(doc.Cues),
	)

	issues, metrics := qc.Evaluate(doc, prof)

	if jsonOutput {
		out := struct {
			Issues  []qc.Issue `json:"issues"`
			Metrics qc.Metrics `json:"metrics"`
		}{Issues: issues, Metrics: metrics}
		if out.Issues == nil {
			out.Issues = []qc.Issue{}
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			return err
		}
	} else {
		printIssues(issues, metrics)
	}

	if reportPath != "" {
		if err := writeReport(reportPath, profileName, issues, metrics, catalog); err != nil {
			return err
		}
		fmt.Printf("Report written: %s\n", reportPath)
	}

	errorCount := 0
	for _, issue := range issues {
		if issue.Severity == qc.SeverityError {
			errorCount++
		}
	}
	if errorCount > 0 {
		return fmt.Errorf("%d error-severity issue(s) found", errorCount)
	}
	return nil
}

func printIssues(issues []qc.Issue, metrics qc.Metrics) {
	fmt.Printf("Cues: %d   Avg CPS: %.2f   Over CPS: %d\n",
		metrics.Count, metrics.AvgCPS, metrics.OverCPS)

	if len(issues) == 0 {
		fmt.Println("No issues found.")
		return
	}

	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		line := ""
		if issue.Line > 0 {
			line = strconv.Itoa(issue.Line)
		}
		rows = append(rows, []string{
			string(issue.Severity),
			issue.Type,
			strconv.Itoa(issue.CueIndex),
			line,
			strconv.FormatInt(issue.TimeMs, 10),
			issue.Message,
		})
	}
	fmt.Println(renderTable(
		[]string{"Severity", "Type", "Cue", "Line", "Time (ms)", "Message"},
		rows,
	))
}

func writeReport(
	path, profileName string,
	issues []qc.Issue,
	metrics qc.Metrics,
	catalog *profile.Catalog,
) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return report.Render(file, report.Data{
		ProfileName: profileName,
		Issues:      issues,
		Metrics:     metrics,
		Sources:     catalog.Sources(profileName),
	})
}
