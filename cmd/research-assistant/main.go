// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-assistant CLI.
// See docs/ARCHITECTURE.md § Surfaces.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/secrets"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the research-assistant CLI.
var rootCmd = &cobra.Command{
	Use:   "research-assistant",
	Short: "Turn a research query into papers, digests, citations, and a mind map",
	Long: `research-assistant answers a free-text research question by fetching matching
papers from the arXiv feed, producing an AI digest of each paper, formatting
APA and BibTeX citations, and deriving a node/edge mind-map graph.

Run a one-shot query with "search", or expose the pipeline over HTTP with
"serve".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-assistant.yaml or ~/.config/research-assistant/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-assistant")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-assistant"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_ASSISTANT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadPipelineConfig merges config-file values over the defaults and fills
// the API key from .secrets/ when the config leaves it empty.
func loadPipelineConfig() types.PipelineConfig {
	cfg := types.DefaultConfig()

	if v := viper.GetDuration("feed.timeout"); v > 0 {
		cfg.Feed.Timeout = v
	}
	if v := viper.GetString("feed.user_agent"); v != "" {
		cfg.Feed.UserAgent = v
	}
	if v := viper.GetInt("feed.max_results"); v > 0 {
		cfg.Feed.MaxResults = v
	}
	if v := viper.GetInt("feed.max_retries"); v > 0 {
		cfg.Feed.MaxRetries = v
	}
	if v := viper.GetString("summary.model"); v != "" {
		cfg.Summary.Model = v
	}
	if v := viper.GetString("summary.api_key"); v != "" {
		cfg.Summary.APIKey = v
	}
	if v := viper.GetInt("summary.concurrency"); v > 0 {
		cfg.Summary.Concurrency = v
	}
	if v := viper.GetInt("summary.max_retries"); v > 0 {
		cfg.Summary.MaxRetries = v
	}
	if v := viper.GetInt("summary.max_bullets"); v > 0 {
		cfg.Summary.MaxBullets = v
	}
	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}

	if cfg.Summary.APIKey == "" {
		cfg.Summary.APIKey = loadedSecrets[secrets.OpenAIKey]
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
