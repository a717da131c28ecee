package generator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// NewLLMClient builds the provider named by the settings.
func NewLLMClient(cfg Settings) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAILLM(cfg)
	case ProviderOpenRouter:
		return NewOpenRouterLLM(cfg)
	case ProviderAnthropic:
		return NewAnthropicLLM(cfg)
	case ProviderGemini:
		return NewGeminiLLM(cfg)
	default:
		return nil, fmt.Errorf("llm provider %q not supported", cfg.Provider)
	}
}

// ValidateKey makes one cheap authenticated call for the provider. It
// reports (false, nil) when the provider rejects the key; the error return
// means the check itself could not run.
func ValidateKey(ctx context.Context, provider Provider, key string) (bool, error) {
	return validateKeyAgainst(ctx, provider, key, "")
}

func validateKeyAgainst(ctx context.Context, provider Provider, key, base string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, nil
	}
	req, err := keyProbeRequest(ctx, provider, key, base)
	if err != nil {
		return false, err
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s: key validation request failed: %w", provider, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, nil
	case http.StatusTooManyRequests:
		return false, fmt.Errorf("%s: %w", provider, ErrRateLimited)
	}
	return false, fmt.Errorf("%s: key validation got status %d", provider, resp.StatusCode)
}

// keyProbeRequest builds the models-list call each provider accepts as the
// cheapest authenticated round trip.
func keyProbeRequest(ctx context.Context, provider Provider, key, base string) (*http.Request, error) {
	newGet := func(u string) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}
	switch provider {
	case ProviderOpenAI:
		if base == "" {
			base = "https://api.openai.com/v1"
		}
		req, err := newGet(strings.TrimRight(base, "/") + "/models")
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+key)
		return req, nil
	case ProviderOpenRouter:
		if base == "" {
			base = openRouterBaseURL
		}
		req, err := newGet(strings.TrimRight(base, "/") + "/models")
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+key)
		return req, nil
	case ProviderAnthropic:
		if base == "" {
			base = anthropicBaseURL
		}
		req, err := newGet(strings.TrimRight(base, "/") + "/v1/models")
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-api-key", key)
		req.Header.Set("anthropic-version", anthropicVersion)
		return req, nil
	case ProviderGemini:
		if base == "" {
			base = geminiBaseURL
		}
		return newGet(strings.TrimRight(base, "/") + "/v1beta/models?key=" + url.QueryEscape(key))
	}
	return nil, fmt.Errorf("llm provider %q not supported", provider)
}
