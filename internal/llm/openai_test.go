package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rtiscope/rtiscope/internal/model"
)

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"rate limited", &openai.APIError{HTTPStatusCode: 429}, ErrQuotaExceeded},
		{"server error", &openai.APIError{HTTPStatusCode: 500}, ErrTransient},
		{"bad gateway", &openai.APIError{HTTPStatusCode: 502}, ErrTransient},
		{"request timeout", &openai.APIError{HTTPStatusCode: 408}, ErrTransient},
		{"unauthorized", &openai.APIError{HTTPStatusCode: 401}, ErrFatal},
		{"bad request", &openai.APIError{HTTPStatusCode: 400}, ErrFatal},
		{"request error", &openai.RequestError{HTTPStatusCode: 503}, ErrTransient},
		{"connection failure", errors.New("dial tcp: connection refused"), ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAPIError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyAPIError(%v) = %v, want sentinel %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyAPIError_ContextErrorsPassThrough(t *testing.T) {
	got := classifyAPIError(context.DeadlineExceeded)
	if !errors.Is(got, context.DeadlineExceeded) {
		t.Errorf("Deadline expiry should pass through, got %v", got)
	}

	got = classifyAPIError(context.Canceled)
	if !errors.Is(got, context.Canceled) {
		t.Errorf("Cancellation should pass through, got %v", got)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrQuotaExceeded, KindQuotaExceeded},
		{ErrTransient, KindTransient},
		{context.DeadlineExceeded, KindTimeout},
		{ErrFatal, KindFatal},
		{errors.New("unknown"), KindFatal},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRecoverableAndRetryable(t *testing.T) {
	if !Recoverable(ErrQuotaExceeded) || !Recoverable(ErrTransient) || !Recoverable(context.DeadlineExceeded) {
		t.Error("Quota, transient and timeout errors are all recoverable")
	}
	if Recoverable(ErrFatal) {
		t.Error("Fatal errors are not recoverable")
	}

	if Retryable(ErrQuotaExceeded) {
		t.Error("Quota errors must not be retried")
	}
	if !Retryable(ErrTransient) || !Retryable(context.DeadlineExceeded) {
		t.Error("Transient and timeout errors permit one retry")
	}
}

func TestNewBackend(t *testing.T) {
	b, err := NewBackend(model.LLMConfig{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if b == nil || b.Name() != "openai" {
		t.Error("Expected an OpenAI backend")
	}

	b, err = NewBackend(model.LLMConfig{Provider: ""})
	if err != nil {
		t.Fatalf("Empty provider should disable the backend, got %v", err)
	}
	if b != nil {
		t.Error("Expected nil backend when disabled")
	}

	if _, err := NewBackend(model.LLMConfig{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestNewOpenAIBackend_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIBackend(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("Expected error when API key is missing")
	}
}
