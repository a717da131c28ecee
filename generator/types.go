package generator

import "time"

// Idea is the user's starting point before any generation happens.
type Idea struct {
	Topic       string   `json:"topic"`
	Audience    string   `json:"audience,omitempty"`
	Tone        string   `json:"tone,omitempty"`
	TargetWords int      `json:"targetWords,omitempty"`
	Notes       []string `json:"notes,omitempty"`
}

// Category buckets an idea so later prompts can specialize.
type Category string

const (
	CategoryTechnology          Category = "technology"
	CategoryProgramming         Category = "programming"
	CategoryAIML                Category = "ai-ml"
	CategoryBusiness            Category = "business"
	CategoryProductivity        Category = "productivity"
	CategoryPersonalDevelopment Category = "personal-development"
	CategoryOther               Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryTechnology, CategoryProgramming, CategoryAIML, CategoryBusiness,
		CategoryProductivity, CategoryPersonalDevelopment, CategoryOther:
		return true
	}
	return false
}

// Classification is the model's judgement of an idea.
type Classification struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason,omitempty"`
}

// Question asks the user for a missing detail before drafting.
type Question struct {
	Text string `json:"text"`
	Hint string `json:"hint,omitempty"`
}

// Answer pairs a clarifying question with the user's reply.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Draft is one generated article revision in markdown form.
type Draft struct {
	Title    string `json:"title"`
	Digest   string `json:"digest"`
	Markdown string `json:"markdown"`
}

// Turn records one generate or revise step.
type Turn struct {
	Comment   string    `json:"comment,omitempty"`
	Draft     Draft     `json:"draft"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}
