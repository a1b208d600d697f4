package model

import "time"

// FallbackMode controls how the orchestrator uses the two backends
type FallbackMode string

const (
	FallbackAuto        FallbackMode = "auto"         // Try primary, fall back on failure
	FallbackLocalOnly   FallbackMode = "local_only"   // Never call the primary backend
	FallbackPrimaryOnly FallbackMode = "primary_only" // Never fall back, failures surface as-is
)

// Valid reports whether m is a known fallback mode.
func (m FallbackMode) Valid() bool {
	switch m {
	case FallbackAuto, FallbackLocalOnly, FallbackPrimaryOnly:
		return true
	}
	return false
}

// Config is the full rtiscope configuration. It is an explicit value
// passed into each component call, never ambient state.
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Anchors  AnchorConfig   `yaml:"anchors"`
	Actions  ActionConfig   `yaml:"actions"`
	FailLog  FailLogConfig  `yaml:"faillog"`
	Cache    CacheConfig    `yaml:"cache"`
	Batch    BatchConfig    `yaml:"batch"`
	Output   OutputConfig   `yaml:"output"`
}

// LLMConfig configures the primary generative backend and the
// orchestrator's fallback behavior.
type LLMConfig struct {
	// Provider name: "openai" or "" (local fallback only)
	Provider string `yaml:"provider"`

	// Model is the primary model identifier
	Model string `yaml:"model"`

	// APIKey for the remote backend (environment variable preferred)
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL overrides the backend endpoint (e.g. a proxy)
	BaseURL string `yaml:"base_url,omitempty"`

	// FallbackMode: auto, local_only, primary_only
	FallbackMode FallbackMode `yaml:"fallback_mode"`

	// Timeout for a single backend call; expiry is treated as a
	// transient error and triggers the fallback transition
	Timeout time.Duration `yaml:"timeout"`

	// MaxTokens limits generated summary length
	MaxTokens int `yaml:"max_tokens"`

	// MaxChunkSize caps how many characters of the full text are
	// embedded into a prompt
	MaxChunkSize int `yaml:"max_chunk_size"`

	// RequestsPerSecond and Burst gate primary backend calls
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// AnchorConfig configures fact anchor extraction.
type AnchorConfig struct {
	// MaxAnchors is the maximum number of anchors returned (>= 1)
	MaxAnchors int `yaml:"max_anchors"`

	// MinScore is the minimum feature score a sentence needs to
	// qualify as an anchor
	MinScore float64 `yaml:"min_score"`
}

// ActionConfig configures the actionability engine.
type ActionConfig struct {
	// AppealWindowDays is the statutory first-appeal window
	AppealWindowDays int `yaml:"appeal_window_days"`
}

// FailLogConfig configures the append-only failure log.
type FailLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// CacheConfig configures summary memoization.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// BatchConfig configures concurrent batch analysis.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig configures rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:          "", // Disabled by default: local extractive fallback only
			Model:             "gpt-4o-mini",
			FallbackMode:      FallbackAuto,
			Timeout:           30 * time.Second,
			MaxTokens:         1000,
			MaxChunkSize:      4000,
			RequestsPerSecond: 1,
			Burst:             3,
		},
		Anchors: AnchorConfig{
			MaxAnchors: 5,
			MinScore:   1.0,
		},
		Actions: ActionConfig{
			AppealWindowDays: 30,
		},
		FailLog: FailLogConfig{
			Enabled: true,
			Path:    "logs/backend_failures.jsonl",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Batch: BatchConfig{
			Workers: 3,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
