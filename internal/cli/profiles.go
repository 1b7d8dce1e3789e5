package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the built-in style-guide profiles",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)

	profilesCmd.Flags().
		Bool("guidelines", false, "Also print the guideline source URLs")
}

func runProfiles(cmd *cobra.Command, args []string) error {
	showGuidelines, _ := cmd.Flags().GetBool("guidelines")

	catalog, err := profile.LoadCatalog()
	if err != nil {
		return err
	}

	fmt.Printf("Profile catalog version %s\n", catalog.Version)

	rows := make([][]string, 0, len(catalog.Profiles))
	for _, name := range catalog.Names() {
		prof, _ := catalog.Get(name)
		rows = append(rows, []string{
			name,
			formatSeconds(prof.MinDurationSec),
			formatSeconds(prof.MaxDurationSec),
			strconv.Itoa(prof.MaxLinesOrDefault()),
			formatInt(prof.MaxCPL),
			formatFloat(prof.TargetCPS),
			strconv.FormatBool(prof.DualSpeakerDash),
		})
	}
	fmt.Println(renderTable(
		[]string{"Profile", "Min dur", "Max dur", "Lines", "CPL", "CPS", "Dual dash"},
		rows,
	))

	if showGuidelines {
		for _, name := range catalog.Names() {
			sources := catalog.Sources(name)
			if len(sources) == 0 {
				continue
			}
			fmt.Printf("\n%s:\n", name)
			for _, url := range sources {
				fmt.Printf("  %s\n", url)
			}
		}
	}
	return nil
}

func formatSeconds(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%gs", *v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
