package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/api"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/config"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/logging"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/profile"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the subtitle QC HTTP service",
	Long: `Run the HTTP service exposing the QC pipeline:

  POST /v1/qc/run    validate a subtitle payload
  POST /v1/qc/fix    validate and optionally apply safe fixes
  GET  /v1/profiles  list the profile catalog
  GET  /healthz      liveness
  GET  /metrics      prometheus metrics

Examples:
  subqc serve
  subqc serve --bind :9090
  subqc serve --config subqc.toml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("config", "", "Path to a TOML config file")
	serveCmd.Flags().String("bind", "", "Bind address, overrides the config file")
	serveCmd.Flags().
		Bool("sample-config", false, "Print a sample config file and exit")
}

func runServe(cmd *cobra.Command, args []string) error {
	if sample, _ := cmd.Flags().GetBool("sample-config"); sample {
		fmt.Print(config.Sample())
		return nil
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
		cfg.Bind = bind
	}

	serverLogger := logger
	if cfg.Verbose && !verbose {
		serverLogger = logging.NewLogger(true)
	}

	catalog, err := profile.LoadCatalog()
	if err != nil {
		return err
	}
	if _, err := catalog.Get(cfg.DefaultProfile); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	server := api.NewServer(cfg, serverLogger, catalog)
	return server.Run(ctx)
}
