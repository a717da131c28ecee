package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message set sent to an LLM. Prefill, when supported by the
// provider, seeds the start of the assistant's reply.
type Prompt struct {
	System  string
	User    string
	History []Message
	Prefill string
}

// Message carries a small amount of prior conversation.
type Message struct {
	Role    string
	Content string
}

// BuildClassifyPrompt asks for a category judgement as bare JSON.
func BuildClassifyPrompt(idea Idea) Prompt {
	var sb strings.Builder
	sb.WriteString("You classify article ideas for a writing assistant.\n")
	sb.WriteString("Respond with JSON only, no prose, in the form:\n")
	sb.WriteString(`{"category": "...", "confidence": 0.0, "reason": "..."}` + "\n")
	sb.WriteString("category must be one of: technology, programming, ai-ml, business, productivity, personal-development, other.\n")
	sb.WriteString("confidence is between 0 and 1.")

	user := fmt.Sprintf("Idea: %s", idea.Topic)
	if idea.Audience != "" {
		user += fmt.Sprintf("\nIntended audience: %s", idea.Audience)
	}
	if len(idea.Notes) > 0 {
		user += "\nNotes:\n- " + strings.Join(idea.Notes, "\n- ")
	}

	return Prompt{
		System:  sb.String(),
		User:    user,
		Prefill: `{"category":`,
	}
}

// BuildQuestionsPrompt asks for 3 to 5 clarifying questions as a JSON array.
func BuildQuestionsPrompt(idea Idea, cls Classification) Prompt {
	var sb strings.Builder
	sb.WriteString("You prepare clarifying questions before an article is drafted.\n")
	sb.WriteString("Respond with a JSON array only, 3 to 5 items, in the form:\n")
	sb.WriteString(`[{"text": "...", "hint": "..."}]` + "\n")
	sb.WriteString("Ask about scope, audience takeaways, and concrete examples. Keep each question short.")

	user := fmt.Sprintf("Idea: %s\nCategory: %s", idea.Topic, cls.Category)
	if idea.Audience != "" {
		user += fmt.Sprintf("\nAudience: %s", idea.Audience)
	}

	return Prompt{
		System:  sb.String(),
		User:    user,
		Prefill: `[{"text":`,
	}
}

// BuildArticlePrompt requests the first full draft.
func BuildArticlePrompt(idea Idea, cls Classification, answers []Answer) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a professional writer drafting a Medium article. Output markdown only, no commentary.\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString("- Start with a single # heading as the title.\n")
	sb.WriteString("- Follow the title with one short opening paragraph that works as a subtitle.\n")
	sb.WriteString("- Organize the body with ## headings.\n")
	sb.WriteString("- Tag every fenced code block with its language.\n")
	sb.WriteString("- Avoid tables and nested lists; Medium cannot render them.\n")
	if idea.TargetWords > 0 {
		sb.WriteString(fmt.Sprintf("- Aim for about %d words.\n", idea.TargetWords))
	}
	if idea.Tone != "" {
		sb.WriteString(fmt.Sprintf("- Tone: %s.\n", idea.Tone))
	}
	if idea.Audience != "" {
		sb.WriteString(fmt.Sprintf("- Audience: %s.\n", idea.Audience))
	}

	var ub strings.Builder
	ub.WriteString(fmt.Sprintf("Topic: %s\nCategory: %s\n", idea.Topic, cls.Category))
	for _, n := range idea.Notes {
		ub.WriteString(fmt.Sprintf("Note: %s\n", n))
	}
	if len(answers) > 0 {
		ub.WriteString("The author answered these clarifying questions:\n")
		for _, a := range answers {
			ub.WriteString(fmt.Sprintf("Q: %s\nA: %s\n", a.Question, a.Answer))
		}
	}
	ub.WriteString("Write the complete article now.")

	return Prompt{System: sb.String(), User: ub.String()}
}

// BuildRevisionPrompt requests a minimal edit of the current draft.
func BuildRevisionPrompt(prev Draft, comment string, history []Turn) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an editor. Apply the feedback with the smallest change that satisfies it.\n")
	sb.WriteString("- Keep the markdown structure: title heading, opening paragraph, ## sections.\n")
	sb.WriteString("- Keep code fences and their language tags intact unless the feedback targets them.\n")
	sb.WriteString("- Output the complete revised markdown only.")

	user := fmt.Sprintf("Current draft:\n%s\n\nFeedback: %s", prev.Markdown, comment)

	var msgs []Message
	for _, t := range history {
		if t.Comment == "" {
			continue
		}
		msgs = append(msgs, Message{Role: "user", Content: t.Comment})
	}

	return Prompt{
		System:  sb.String(),
		User:    user,
		History: msgs,
	}
}
