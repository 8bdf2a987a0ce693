package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/lk2023060901/ai-learning-backend/internal/ai/provider/types"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Provider OpenAI 兼容协议的 Provider 实现（HuggingFace router、OpenAI 等）
type Provider struct {
	config *types.Config
	client *openai.Client
	logger *logger.Logger
}

// New 创建 OpenAI Provider
func New(cfg *types.Config, log *logger.Logger) (*Provider, error) {
	if cfg == nil {
		return nil, types.ErrMissingAPIKey
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.L()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	log.Info("openai provider created",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout))

	return &Provider{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
		logger: log,
	}, nil
}

// Name 返回 Provider 名称
func (p *Provider) Name() string {
	return "openai"
}

// CreateChatCompletion 创建聊天补全（同步）
func (p *Provider) CreateChatCompletion(ctx context.Context, req types.ChatCompletionRequest) (*types.ChatCompletionResponse, error) {
	if req.Model == "" {
		req.Model = p.config.Model
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      false,
	})
	if err != nil {
		return nil, p.wrapError(err)
	}

	out := &types.ChatCompletionResponse{
		ID:    resp.ID,
		Model: resp.Model,
		Usage: types.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		Choices: make([]types.Choice, 0, len(resp.Choices)),
	}
	for _, c := range resp.Choices {
		out.Choices = append(out.Choices, types.Choice{
			Index:        c.Index,
			Message:      types.Message{Role: c.Message.Role, Content: c.Message.Content},
			FinishReason: string(c.FinishReason),
		})
	}

	if len(out.Choices) == 0 {
		return nil, &types.ProviderError{
			Type:     types.ErrorTypeEmptyResponse,
			Provider: p.Name(),
			Message:  "completion returned no choices",
			Err:      types.ErrNoChoices,
		}
	}

	p.logger.Debug("chat completion finished",
		zap.String("model", out.Model),
		zap.Int("total_tokens", out.Usage.TotalTokens))

	return out, nil
}

// wrapError 将 go-openai 错误转换为 ProviderError
func (p *Provider) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return types.NewStatusError(p.Name(), apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return types.NewStatusError(p.Name(), reqErr.HTTPStatusCode, "request failed", err)
	}

	return types.NewProviderError(p.Name(), "request failed", err)
}

// Close 关闭 Provider
func (p *Provider) Close() error {
	return nil
}
