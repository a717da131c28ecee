package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Provider identifies a supported completion backend.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderAnthropic  Provider = "anthropic"
	ProviderGemini     Provider = "gemini"
	ProviderOpenRouter Provider = "openrouter"
)

// IsValid reports whether p names a supported backend.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOpenRouter:
		return true
	}
	return false
}

// Sentinel errors callers branch on. Provider adapters wrap these with
// provider context.
var (
	ErrInvalidAPIKey   = errors.New("llm: invalid api key")
	ErrRateLimited     = errors.New("llm: rate limited")
	ErrEmptyCompletion = errors.New("llm: empty completion")
)

// LLMClient abstracts a completion backend so providers can be swapped or
// mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Settings configures a concrete LLM client.
type Settings struct {
	Provider Provider
	Model    string
	APIKey   string
	BaseURL  string
}

// checkStatus maps an HTTP response to the sentinel errors. The body is
// only consumed on failure.
func checkStatus(provider string, resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %w", provider, ErrInvalidAPIKey)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", provider, ErrRateLimited)
	}
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("%s: unexpected status %d: %s", provider, resp.StatusCode, detail)
}
