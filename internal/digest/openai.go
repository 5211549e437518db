// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const systemPrompt = `You are an expert research paper summarizer. Given a paper's title and abstract, produce a structured digest.

Rules for bullets:
- 3 to 8 bullet points
- Each bullet covers one contribution, method, or result
- One short sentence per bullet, no trailing period needed

Rules for the narrative:
- A single concise paragraph restating the paper's main idea
- Plain language, no hype

Output as JSON only, no other text:
{
  "bullets": ["key point 1", "key point 2", "key point 3"],
  "narrative": "one-paragraph summary"
}`

// OpenAIBackend requests digests from the OpenAI chat completions API.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend builds a backend from the summary config. Extra request
// options are appended after the API key, which lets tests point the client
// at an httptest server via option.WithBaseURL.
func NewOpenAIBackend(cfg types.SummaryConfig, opts ...option.RequestOption) *OpenAIBackend {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAIBackend{
		client: &client,
		model:  cfg.Model,
	}
}

// Summarize sends one paper's title and abstract to the model and parses
// the JSON reply. Any reply that does not match the contract is an error
// for this paper only.
func (b *OpenAIBackend) Summarize(ctx context.Context, paper types.Paper) (types.Digest, error) {
	userPrompt := fmt.Sprintf("Title: %s\n\nAbstract: %s", paper.Title, paper.Abstract)

	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return types.Digest{}, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return types.Digest{}, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var parsed struct {
		Bullets   []string `json:"bullets"`
		Narrative string   `json:"narrative"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return types.Digest{}, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	return types.Digest{
		Bullets:   parsed.Bullets,
		Narrative: parsed.Narrative,
	}, nil
}

// cleanJSONResponse strips Markdown fences and surrounding prose so the
// reply can be unmarshalled even when the model decorates its output.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
