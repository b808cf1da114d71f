package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"newswatch/pkg/config"
	"newswatch/pkg/domain"
)

// Summarizer produces short article summaries through an OpenAI-compatible
// endpoint. It is deliberately stateless and makes exactly one attempt per
// call; pacing between calls is the orchestrator's job. A summary is always
// returned - unconfigured backend, thin content and backend failures all map
// to degraded statuses with fixed placeholder texts, never to an error.
type Summarizer struct {
	client     *openai.Client
	config     config.LLMConfig
	configured bool
}

// placeholder texts for degraded summaries, keep these human-readable since
// they go straight into the delivered message
const (
	placeholderUnconfigured = "AI summarization is not configured."
	placeholderThinContent  = "Article body too short to summarize."
	placeholderUnavailable  = "AI summary unavailable right now."
)

const systemPrompt = `You are a news assistant. Summarize the given news article in exactly three short lines, ` +
	`capturing the key facts. Write the summary in the same language as the article. ` +
	`Respond with the three lines only, no preamble.`

// NewSummarizer creates a summarizer; with no endpoint and no api key it
// stays in unconfigured mode and never calls out
func NewSummarizer(cfg config.LLMConfig) *Summarizer {
	configured := cfg.Endpoint != "" || cfg.APIKey != ""
	if !configured {
		return &Summarizer{config: cfg}
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	return &Summarizer{
		client:     openai.NewClientWithConfig(clientConfig),
		config:     cfg,
		configured: true,
	}
}

// Summarize produces a three-line summary for the article. Content below the
// configured minimum is not worth an external call and short-circuits.
func (s *Summarizer) Summarize(ctx context.Context, title, content string) domain.Summary {
	if !s.configured {
		return domain.Summary{Text: placeholderUnconfigured, Status: domain.SummaryUnconfigured}
	}

	if utf8.RuneCountInString(content) < s.config.MinContent {
		return domain.Summary{Text: placeholderThinContent, Status: domain.SummaryInsufficientContent}
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Temperature: float32(s.config.Temperature),
		MaxTokens:   s.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(title, content)},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		lgr.Printf("[WARN] summarization failed for %q: %v", title, err)
		return domain.Summary{Text: placeholderUnavailable, Status: domain.SummaryServiceUnavailable}
	}
	if len(resp.Choices) == 0 {
		lgr.Printf("[WARN] summarization returned no choices for %q", title)
		return domain.Summary{Text: placeholderUnavailable, Status: domain.SummaryServiceUnavailable}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		lgr.Printf("[WARN] summarization returned empty text for %q", title)
		return domain.Summary{Text: placeholderUnavailable, Status: domain.SummaryServiceUnavailable}
	}

	return domain.Summary{Text: text, Status: domain.SummaryOk}
}

// buildPrompt creates the user prompt for the LLM
func buildPrompt(title, content string) string {
	var sb strings.Builder
	sb.WriteString("Summarize this news article in three lines.\n\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", title))
	sb.WriteString(fmt.Sprintf("Body: %s\n", content))
	return sb.String()
}
