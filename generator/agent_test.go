package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	raw string
	err error
}

func (s stubLLM) Complete(context.Context, Prompt) (string, error) {
	return s.raw, s.err
}

func TestNewAgentRequiresClient(t *testing.T) {
	_, err := NewAgent(nil)
	assert.Error(t, err)
}

func TestAgentGeneratePost(t *testing.T) {
	agent, err := NewAgent(stubLLM{raw: `{"title":"T","metaDescription":"M","content":"C"}`})
	require.NoError(t, err)

	post, err := agent.GeneratePost(context.Background(), "topic")
	require.NoError(t, err)
	assert.Equal(t, "T", post.Title)
}

func TestAgentGeneratePostPropagatesLLMError(t *testing.T) {
	agent, err := NewAgent(stubLLM{err: errors.New("rate limited")})
	require.NoError(t, err)

	_, err = agent.GeneratePost(context.Background(), "topic")
	assert.ErrorContains(t, err, "rate limited")
}

func TestMockLLMOutputRecovers(t *testing.T) {
	agent, err := NewAgent(MockLLM{})
	require.NoError(t, err)

	post, err := agent.GeneratePost(context.Background(), "gardens")
	require.NoError(t, err)
	assert.Equal(t, "Sample Post", post.Title)
	assert.Contains(t, post.Content, "gardens")
}
