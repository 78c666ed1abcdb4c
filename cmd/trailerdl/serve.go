package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"trailerdl/internal/server"
	"trailerdl/pkg/config"
	"trailerdl/pkg/logger"
	"trailerdl/pkg/ui"
)

var (
	listenAddr string
	catalogURL string
	outputDir  string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backend catalog API",
	Long: `Run the backend half of the system: the HTTP API the client talks to.

It serves POST /search, /download, and /download_random against the
configured catalog site, plus GET /api/scrape for the raw scrape dump.`,
	Example: `  # Serve on the default address
  trailerdl serve

  # Custom listen address and download directory
  trailerdl serve --listen :8080 --output /data/downloads`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runServe()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (host:port)")
	serveCmd.Flags().StringVar(&catalogURL, "catalog-url", "", "catalog site base URL")
	serveCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for downloads")
}

func runServe() {
	flags := make(map[string]interface{})
	if listenAddr != "" {
		flags["listen"] = listenAddr
	}
	if catalogURL != "" {
		flags["catalog-url"] = catalogURL
	}
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	logger.Initialize(&cfg.Logging)
	log := logger.GetLogger()
	log.WithField("version", version).Info("trailerdl backend starting")

	srv := server.New(cfg, log)
	if err := srv.Run(context.Background()); err != nil {
		log.WithError(err).Error("server failed")
		ui.PrintError("Server failed", err.Error())
		os.Exit(1)
	}
}
