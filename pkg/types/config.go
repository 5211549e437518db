package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig holds settings for the literature feed stage.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the default number of papers requested per query (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MaxRetries is the number of retries on throttled feed responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SummaryConfig holds settings for the summarization stage.
type SummaryConfig struct {
	// Model is the generative model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the generative API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Concurrency bounds the number of in-flight per-paper summarization
	// calls (default 4). Unbounded fan-out over large result sets would
	// trip the provider's rate limits.
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// MaxRetries is the number of retry attempts per paper (default 0).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxBullets caps the number of bullet points kept per digest (default 8).
	MaxBullets int `json:"max_bullets" yaml:"max_bullets"`
}

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Feed    FeedConfig    `json:"feed" yaml:"feed"`
	Summary SummaryConfig `json:"summary" yaml:"summary"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}

// DefaultConfig returns the pipeline configuration with all defaults applied.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		Feed: FeedConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "research-assistant/0.1",
			},
			MaxResults: 5,
			MaxRetries: 3,
		},
		Summary: SummaryConfig{
			Model:       "gpt-4o-mini",
			Concurrency: 4,
			MaxBullets:  8,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
