// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/digest"
	"github.com/pdiddy/research-assistant/internal/feed"
	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the pipeline over HTTP",
	Long: `Serve starts an HTTP server with two routes: POST /search runs a query
through the pipeline and returns the bundle as JSON; GET /healthz reports
liveness.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadPipelineConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		slog.SetDefault(log)

		o := pipeline.New(
			feed.NewClient(cfg.Feed),
			digest.NewService(digest.NewOpenAIBackend(cfg.Summary), cfg.Summary),
			log,
		)

		r := server.NewRouter(server.NewSearchHandler(o))
		log.Info("listening", "addr", cfg.Server.Addr)
		return r.Run(cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}
