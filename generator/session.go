package generator

import (
	"context"
	"sync"
	"time"
)

// Session holds one idea's multi-step state: classify, clarify, draft,
// revise. Methods are safe for concurrent use; the HTTP layer shares
// sessions across requests.
type Session struct {
	mu             sync.Mutex
	id             string
	idea           Idea
	classification Classification
	questions      []Question
	answers        []Answer
	draft          Draft
	history        []Turn
	agent          *Agent
}

// SessionState is a point-in-time copy of a session for serialization.
type SessionState struct {
	ID             string         `json:"id"`
	Idea           Idea           `json:"idea"`
	Classification Classification `json:"classification"`
	Questions      []Question     `json:"questions"`
	Answers        []Answer       `json:"answers,omitempty"`
	Draft          Draft          `json:"draft"`
	History        []Turn         `json:"history,omitempty"`
}

// NewSession creates a session; nothing is generated yet.
func NewSession(id string, idea Idea, agent *Agent) *Session {
	return &Session{
		id:    id,
		idea:  idea,
		agent: agent,
	}
}

// Start classifies the idea and prepares the clarifying questions.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cls, err := s.agent.Classify(ctx, s.idea)
	if err != nil {
		return err
	}
	qs, err := s.agent.ClarifyingQuestions(ctx, s.idea, cls)
	if err != nil {
		return err
	}
	s.classification = cls
	s.questions = qs
	return nil
}

// SetAnswers stores the user's replies to the clarifying questions.
func (s *Session) SetAnswers(answers []Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = answers
}

// Propose generates the first draft.
func (s *Session) Propose(ctx context.Context) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.agent.Generate(ctx, s.idea, s.classification, s.answers)
	if err != nil {
		return Draft{}, err
	}
	s.draft = draft
	s.appendTurn("", draft, "initial draft")
	return draft, nil
}

// Revise applies one round of feedback to the current draft.
func (s *Session) Revise(ctx context.Context, comment string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.agent.Revise(ctx, s.draft, comment, s.history)
	if err != nil {
		return Draft{}, err
	}
	s.draft = draft
	s.appendTurn(comment, draft, "revision")
	return draft, nil
}

// Snapshot copies the current state for safe serialization.
func (s *Session) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		ID:             s.id,
		Idea:           s.idea,
		Classification: s.classification,
		Questions:      append([]Question(nil), s.questions...),
		Answers:        append([]Answer(nil), s.answers...),
		Draft:          s.draft,
		History:        append([]Turn(nil), s.history...),
	}
}

func (s *Session) appendTurn(comment string, draft Draft, summary string) {
	s.history = append(s.history, Turn{
		Comment:   comment,
		Draft:     draft,
		Summary:   summary,
		CreatedAt: time.Now(),
	})
}
