package generator

import (
	"context"
	"errors"
	"strings"
)

const (
	structuredRetries = 2
	maxQuestions      = 5
)

// Agent drives the idea-to-draft workflow against one LLM client.
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// Classify buckets the idea so later prompts can specialize. When the
// model's reply cannot be parsed the keyword fallback answers instead, so
// classification only fails on transport errors.
func (a *Agent) Classify(ctx context.Context, idea Idea) (Classification, error) {
	cls, parsed, err := CompleteJSON[Classification](ctx, a.llm, BuildClassifyPrompt(idea), structuredRetries,
		map[string]any{"confidence": 0.5})
	if err != nil {
		return Classification{}, err
	}
	if !parsed || !cls.Category.IsValid() {
		return fallbackClassification(idea), nil
	}
	return cls, nil
}

// ClarifyingQuestions asks for 3 to 5 follow-ups about the idea, falling
// back to a generic set when the model's reply is unusable.
func (a *Agent) ClarifyingQuestions(ctx context.Context, idea Idea, cls Classification) ([]Question, error) {
	qs, parsed, err := CompleteJSON[[]Question](ctx, a.llm, BuildQuestionsPrompt(idea, cls), structuredRetries, nil)
	if err != nil {
		return nil, err
	}
	if !parsed || len(qs) == 0 {
		return defaultQuestions(), nil
	}
	if len(qs) > maxQuestions {
		qs = qs[:maxQuestions]
	}
	return qs, nil
}

// Generate produces the first draft from the idea and the answered
// questions.
func (a *Agent) Generate(ctx context.Context, idea Idea, cls Classification, answers []Answer) (Draft, error) {
	raw, err := a.llm.Complete(ctx, BuildArticlePrompt(idea, cls, answers))
	if err != nil {
		return Draft{}, err
	}
	return PostProcess(raw)
}

// Revise applies one round of feedback to the current draft.
func (a *Agent) Revise(ctx context.Context, prev Draft, comment string, history []Turn) (Draft, error) {
	raw, err := a.llm.Complete(ctx, BuildRevisionPrompt(prev, comment, history))
	if err != nil {
		return Draft{}, err
	}
	return PostProcess(raw)
}

// categoryKeywords is ordered; the first bucket with a hit wins so the
// fallback stays deterministic. Single words match whole tokens, phrases
// match as substrings.
var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryAIML, []string{"ai", "ml", "llm", "gpt", "neural", "machine learning", "deep learning"}},
	{CategoryProgramming, []string{"go", "golang", "python", "javascript", "rust", "code", "coding", "programming", "api", "debugging", "software"}},
	{CategoryTechnology, []string{"tech", "technology", "cloud", "security", "hardware", "internet"}},
	{CategoryBusiness, []string{"business", "startup", "market", "revenue", "customer", "sales"}},
	{CategoryProductivity, []string{"productivity", "habit", "habits", "workflow", "focus", "time management"}},
	{CategoryPersonalDevelopment, []string{"career", "growth", "learning", "mindset", "life"}},
}

func fallbackClassification(idea Idea) Classification {
	haystack := strings.ToLower(idea.Topic + " " + strings.Join(idea.Notes, " "))
	tokens := make(map[string]struct{})
	for _, tok := range strings.FieldsFunc(haystack, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	}) {
		tokens[tok] = struct{}{}
	}
	matches := func(kw string) bool {
		if strings.Contains(kw, " ") {
			return strings.Contains(haystack, kw)
		}
		_, ok := tokens[kw]
		return ok
	}
	for _, bucket := range categoryKeywords {
		for _, w := range bucket.words {
			if matches(w) {
				return Classification{Category: bucket.category, Confidence: 0.3, Reason: "keyword match: " + w}
			}
		}
	}
	return Classification{Category: CategoryOther, Confidence: 0.2, Reason: "no keyword match"}
}

func defaultQuestions() []Question {
	return []Question{
		{Text: "Who is the article for and what should they be able to do after reading it?"},
		{Text: "What is the one takeaway the article must land?"},
		{Text: "Do you have a concrete example, story, or code sample to anchor it?"},
	}
}
