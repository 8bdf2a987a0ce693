package types

import "strings"

// ChatCompletionResponse 聊天补全响应
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice 选择项
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage Token 使用统计
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FirstText 返回第一个选择项的文本；没有选择项时 ok 为 false
func (r *ChatCompletionResponse) FirstText() (text string, ok bool) {
	if r == nil || len(r.Choices) == 0 {
		return "", false
	}
	return strings.TrimSpace(r.Choices[0].Message.Content), true
}
