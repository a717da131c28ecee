package generator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMClient(t *testing.T) {
	tests := []struct {
		provider Provider
		want     any
	}{
		{ProviderOpenAI, &OpenAILLM{}},
		{ProviderOpenRouter, &OpenAILLM{}},
		{ProviderAnthropic, &AnthropicLLM{}},
		{ProviderGemini, &GeminiLLM{}},
	}
	for _, tc := range tests {
		t.Run(string(tc.provider), func(t *testing.T) {
			client, err := NewLLMClient(Settings{Provider: tc.provider, Model: "test-model", APIKey: "sk-test"})
			require.NoError(t, err)
			assert.IsType(t, tc.want, client)
		})
	}
}

func TestNewLLMClient_UnknownProvider(t *testing.T) {
	_, err := NewLLMClient(Settings{Provider: "cohere", Model: "m", APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"cohere" not supported`)
}

func TestNewLLMClient_MissingKeyOrModel(t *testing.T) {
	for _, p := range []Provider{ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic, ProviderGemini} {
		_, err := NewLLMClient(Settings{Provider: p, Model: "m"})
		assert.Error(t, err, "provider %s without key", p)

		_, err = NewLLMClient(Settings{Provider: p, APIKey: "k"})
		assert.Error(t, err, "provider %s without model", p)
	}
}

func TestValidateKey_EmptyKey(t *testing.T) {
	ok, err := ValidateKey(context.Background(), ProviderOpenAI, "   ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateKey_UnknownProvider(t *testing.T) {
	_, err := ValidateKey(context.Background(), "cohere", "some-key")
	require.Error(t, err)
}

func TestValidateKey_Probes(t *testing.T) {
	var (
		gotMethod, gotPath, gotQuery string
		gotHeader                    http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotHeader = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tests := []struct {
		provider Provider
		check    func(t *testing.T)
	}{
		{ProviderOpenAI, func(t *testing.T) {
			assert.Equal(t, "/models", gotPath)
			assert.Equal(t, "Bearer sk-test", gotHeader.Get("Authorization"))
		}},
		{ProviderOpenRouter, func(t *testing.T) {
			assert.Equal(t, "/models", gotPath)
			assert.Equal(t, "Bearer sk-test", gotHeader.Get("Authorization"))
		}},
		{ProviderAnthropic, func(t *testing.T) {
			assert.Equal(t, "/v1/models", gotPath)
			assert.Equal(t, "sk-test", gotHeader.Get("x-api-key"))
			assert.Equal(t, "2023-06-01", gotHeader.Get("anthropic-version"))
		}},
		{ProviderGemini, func(t *testing.T) {
			assert.Equal(t, "/v1beta/models", gotPath)
			assert.Equal(t, "key=sk-test", gotQuery)
			assert.Empty(t, gotHeader.Get("Authorization"))
		}},
	}
	for _, tc := range tests {
		t.Run(string(tc.provider), func(t *testing.T) {
			ok, err := validateKeyAgainst(context.Background(), tc.provider, "sk-test", srv.URL)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, http.MethodGet, gotMethod)
			tc.check(t)
		})
	}
}

func TestValidateKey_StatusHandling(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		valid   bool
		wantErr bool
	}{
		{"accepted", http.StatusOK, true, false},
		{"unauthorized", http.StatusUnauthorized, false, false},
		{"forbidden", http.StatusForbidden, false, false},
		{"rate limited", http.StatusTooManyRequests, false, true},
		{"server error", http.StatusInternalServerError, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			ok, err := validateKeyAgainst(context.Background(), ProviderOpenAI, "sk-test", srv.URL)
			assert.Equal(t, tc.valid, ok)
			if tc.wantErr {
				require.Error(t, err)
				if tc.status == http.StatusTooManyRequests {
					assert.ErrorIs(t, err, ErrRateLimited)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
