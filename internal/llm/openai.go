package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rtiscope/rtiscope/internal/model"
)

// OpenAIBackend implements the Backend interface over the OpenAI Chat
// Completions API.
type OpenAIBackend struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// NewOpenAIBackend creates a new OpenAI backend.
func NewOpenAIBackend(cfg model.LLMConfig) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIBackend{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name returns the backend name
func (b *OpenAIBackend) Name() string {
	return "openai"
}

// Generate produces a summary for the given prompt. API failures are
// mapped to the quota/transient/fatal taxonomy so the orchestrator can
// decide whether to fall back.
func (b *OpenAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	mdl := b.cfg.Model
	if mdl == "" {
		mdl = openai.GPT4oMini
	}

	maxTokens := b.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	req := openai.ChatCompletionRequest{
		Model: mdl,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize government disclosure letters. Base every statement strictly on the provided text and key facts.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3, // Lower temperature for focused, factual output
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyAPIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response from OpenAI", ErrTransient)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// classifyAPIError wraps OpenAI client errors with the taxonomy
// sentinels.
func classifyAPIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == 429:
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	case status >= 500, status == 408:
		return fmt.Errorf("%w: %v", ErrTransient, err)
	case status > 0:
		return fmt.Errorf("%w: %v", ErrFatal, err)
	}

	// No HTTP status: connection-level failure, treat as transient
	return fmt.Errorf("%w: %v", ErrTransient, err)
}
