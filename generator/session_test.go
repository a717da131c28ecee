package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScriptedSession(t *testing.T, id string, idea Idea, responses []string) *Session {
	t.Helper()
	agent, err := NewAgent(&MockLLM{Responses: responses})
	require.NoError(t, err)
	return NewSession(id, idea, agent)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	sess := newScriptedSession(t, "s1", Idea{Topic: "Go generics", Audience: "gophers"}, []string{
		`{"category": "programming", "confidence": 0.8, "reason": "language feature"}`,
		`[{"text": "Which Go version?"}, {"text": "Target length?", "hint": "words"}]`,
		"# Go Generics\n\nGenerics landed in 1.18 and changed API design.\n\n## Constraints\n\nBody.\n",
		"# Go Generics\n\nShorter opener about generics.\n\n## Constraints\n\nBody.\n",
	})

	require.NoError(t, sess.Start(ctx))
	state := sess.Snapshot()
	assert.Equal(t, "s1", state.ID)
	assert.Equal(t, CategoryProgramming, state.Classification.Category)
	require.Len(t, state.Questions, 2)
	assert.Equal(t, "Which Go version?", state.Questions[0].Text)
	assert.Empty(t, state.History)

	sess.SetAnswers([]Answer{{Question: "Which Go version?", Answer: "1.22"}})

	draft, err := sess.Propose(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Go Generics", draft.Title)
	assert.Equal(t, "Generics landed in 1.18 and changed API design.", draft.Digest)

	state = sess.Snapshot()
	require.Len(t, state.History, 1)
	assert.Equal(t, "initial draft", state.History[0].Summary)
	assert.Empty(t, state.History[0].Comment)
	assert.False(t, state.History[0].CreatedAt.IsZero())
	require.Len(t, state.Answers, 1)
	assert.Equal(t, "1.22", state.Answers[0].Answer)

	revised, err := sess.Revise(ctx, "shorten the opener")
	require.NoError(t, err)
	assert.Equal(t, "Shorter opener about generics.", revised.Digest)

	state = sess.Snapshot()
	assert.Equal(t, revised, state.Draft)
	require.Len(t, state.History, 2)
	assert.Equal(t, "revision", state.History[1].Summary)
	assert.Equal(t, "shorten the opener", state.History[1].Comment)
}

func TestSessionStart_PropagatesTransportError(t *testing.T) {
	boom := errors.New("dial tcp: refused")
	agent, _ := NewAgent(&MockLLM{Err: boom})
	sess := NewSession("s2", Idea{Topic: "t"}, agent)

	assert.ErrorIs(t, sess.Start(context.Background()), boom)
	assert.Empty(t, sess.Snapshot().Questions)
}

func TestSessionPropose_PropagatesTransportError(t *testing.T) {
	boom := errors.New("timeout")
	agent, _ := NewAgent(&MockLLM{Err: boom})
	sess := NewSession("s3", Idea{Topic: "t"}, agent)

	_, err := sess.Propose(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, sess.Snapshot().History)
}

func TestSessionSnapshot_CopiesSlices(t *testing.T) {
	sess := newScriptedSession(t, "s4", Idea{Topic: "t"}, []string{
		`{"category": "other", "confidence": 0.4}`,
		`[{"text": "Original?"}]`,
	})
	require.NoError(t, sess.Start(context.Background()))

	snap := sess.Snapshot()
	snap.Questions[0].Text = "mutated"

	assert.Equal(t, "Original?", sess.Snapshot().Questions[0].Text)
}
