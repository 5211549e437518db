// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/internal/digest"
	"github.com/pdiddy/research-assistant/internal/feed"
	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one query through the pipeline and print the bundle",
	Long: `Search fetches papers matching a free-text query from the arXiv feed,
digests each paper with the configured model, formats citations, and prints
the resulting bundle. Without an API key the digests are empty but the rest
of the bundle is still produced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		if query == "" {
			query = strings.Join(args, " ")
		}
		maxResults, _ := cmd.Flags().GetInt("max-results")
		format, _ := cmd.Flags().GetString("format")

		cfg := loadPipelineConfig()
		if maxResults <= 0 {
			maxResults = cfg.Feed.MaxResults
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		o := pipeline.New(
			feed.NewClient(cfg.Feed),
			digest.NewService(digest.NewOpenAIBackend(cfg.Summary), cfg.Summary),
			slog.Default(),
		)

		bundle, err := o.Run(ctx, query, maxResults)
		if err != nil {
			return err
		}

		switch format {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(bundle)
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(bundle)
		default:
			formatTable(bundle, os.Stdout)
			return nil
		}
	},
}

// formatTable writes the bundle as a human-readable listing.
func formatTable(b *types.Bundle, w io.Writer) {
	if len(b.Papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	for i, p := range b.Papers {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Title)
		fmt.Fprintf(w, "   %s\n", b.Citations[i].APA)
		for _, bullet := range b.Summaries[i].Bullets {
			fmt.Fprintf(w, "   - %s\n", bullet)
		}
		if i < len(b.Papers)-1 {
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintf(w, "\n%d results, %d graph nodes, %d edges\n",
		len(b.Papers), len(b.Graph.Nodes), len(b.Graph.Edges))
}

func init() {
	searchCmd.Flags().String("query", "", "free-text research question")
	searchCmd.Flags().Int("max-results", 0, "maximum number of papers (default from config, 5)")
	searchCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(searchCmd)
}
