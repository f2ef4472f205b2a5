package generator

import (
	"context"
	"errors"
)

// Agent 负责按关键词消息生成结构化稿件。
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// GeneratePost sends the expanded message to the model and recovers a
// structured Post from whatever text comes back. Only the model call
// itself can fail; recovery is total.
func (a *Agent) GeneratePost(ctx context.Context, message string) (Post, error) {
	raw, err := a.llm.Complete(ctx, BuildPostPrompt(message))
	if err != nil {
		return Post{}, err
	}
	return Recover(raw), nil
}
