package generator

import "context"

// LLMClient 抽象大模型客户端，便于替换/Mock。
// Complete 发送一轮 system+user 提示，返回模型原始文本；
// 文本可能不是合法 JSON，由 Recover 负责兜底解析。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings 是构造具体客户端所需的连接参数。
// Provider 决定走哪家接口，BaseURL 为空时用官方默认地址。
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
