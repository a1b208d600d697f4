package llm

import (
	"fmt"
	"strings"

	"github.com/rtiscope/rtiscope/internal/model"
)

// NewBackend creates the primary backend named in the configuration.
// An empty provider name returns (nil, nil): the orchestrator then
// runs in local-only mode.
func NewBackend(cfg model.LLMConfig) (Backend, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIBackend(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}
