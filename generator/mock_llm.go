package generator

import (
	"context"
	"strings"
	"sync"
)

// MockLLM is a deterministic stand-in for local runs and tests. With
// Responses set it replays them in order; otherwise it fabricates a small
// article from the prompt.
type MockLLM struct {
	Responses []string
	Err       error

	mu   sync.Mutex
	next int
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.next < len(m.Responses) {
		resp := m.Responses[m.next]
		m.next++
		return resp, nil
	}
	return sampleArticle(prompt), nil
}

// Calls reports how many scripted responses were consumed.
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next
}

func sampleArticle(prompt Prompt) string {
	var sb strings.Builder
	sb.WriteString("# Sample Generated Article\n\n")
	sb.WriteString("This opening paragraph summarizes what the article covers.\n\n")
	sb.WriteString("## Body\n\n")
	sb.WriteString("Content generated from the request:\n\n")
	sb.WriteString("```text\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n```\n")
	return sb.String()
}
