package types

// 消息角色
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatCompletionRequest 聊天补全请求（OpenAI 标准格式）
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float32   `json:"temperature,omitempty"`
}

// Message 消息结构（用于请求和响应）
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessage 构造单条用户消息
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
