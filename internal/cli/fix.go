package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/profile"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/qcfix"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/subtitle"
)

var fixCmd = &cobra.Command{
	Use:   "fix [subtitle_file]",
	Short: "Apply safe fixes to a subtitle file and write canonical SRT",
	Long: `Apply the deterministic safe-fix subset of a profile to a subtitle
file: duration clamping, line reflow, ellipsis normalization and
dual-speaker dash insertion. The result is always written as SRT,
regardless of the input format.

Examples:
  subqc fix episode.srt
  subqc fix episode.vtt --profile SVT-SE -o fixed.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().
		StringP("profile", "p", "Netflix-SV", "Profile name from the catalog")
}

func runFix(cmd *cobra.Command, args []string) error {
	path := args[0]
	profileName, _ := cmd.Flags().GetString("profile")
	outputPath, _ := cmd.Flags().GetString("output")

	if outputPath == "" {
		ext := filepath.Ext(path)
		outputPath = strings.TrimSuffix(path, ext) + ".fixed.srt"
	}

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

	doc, err := subtitle.Load(string(data), path)
	if err != nil {
		return err
	}

	logger.Infow("Applying safe fixes",
		"file", path,
		"profile", profileName,
		"cues", len(doc.Cues),
	)

	changes := qcfix.Apply(doc, prof)
	for _, change := range changes {
		logger.Infow("Fixed cue",
			"cue", change.CueIndex,
			"applied", strings.Join(change.Applied, ","),
		)
	}

	if err := os.WriteFile(outputPath, []byte(subtitle.RenderSRT(doc)), 0644); err != nil {
		return fmt.Errorf("write fixed file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Fixed %d cue(s), output written: %s\n", len(changes), absOutput)

	return nil
}
