package generator

import (
	"context"
	"encoding/json"
	"fmt"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	post := Post{
		Title:           "Sample Post",
		MetaDescription: "A locally generated placeholder post, no external model involved.",
		Content:         fmt.Sprintf("## Sample Post\n\nGenerated from the prompt:\n\n%s\n", prompt.User),
	}
	data, err := json.Marshal(post)
	if err != nil {
		return "", err
	}
	// Wrapped in a code fence on purpose so the recovery path stays exercised.
	return "```json\n" + string(data) + "\n```", nil
}
