package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subqc",
	Short: "Subtitle QC for broadcaster style guides",
	Long: `Subqc validates timed-text subtitle files (SRT, WebVTT, TTML)
against broadcaster style-guide profiles and can apply a safe,
deterministic subset of corrections.

Run 'subqc profiles' to see the built-in profile catalog.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
