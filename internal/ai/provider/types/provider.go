package types

import "context"

// Provider 统一的 AI Provider 接口（基于 OpenAI 协议，仅同步补全）
type Provider interface {
	// CreateChatCompletion 创建聊天补全（同步，非流式）
	CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)

	// Name 返回 Provider 名称
	Name() string

	// Close 关闭 Provider，释放资源
	Close() error
}
