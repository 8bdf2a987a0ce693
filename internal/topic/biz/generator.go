package biz

import (
	"context"
	"fmt"
	"strings"

	providertypes "github.com/lk2023060901/ai-learning-backend/internal/ai/provider/types"
	apperrors "github.com/lk2023060901/ai-learning-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// GenerateInput 生成提示词所需的上下文
type GenerateInput struct {
	Topic       string
	ModuleTitle string
	Difficulty  string
	TargetGoal  string
}

const promptTemplate = `Generate comprehensive learning content for:
Topic: %s
Module: %s
Difficulty: %s
Target: %s

Provide JSON with:
{
  "explanation": "detailed 200-300 word explanation",
  "keyPoints": ["point 1", "point 2", "point 3", "point 4", "point 5"],
  "applications": ["real-world use 1", "real-world use 2", "real-world use 3"],
  "pitfalls": ["common mistake 1", "common mistake 2", "common mistake 3"],
  "practiceIdeas": ["exercise 1", "exercise 2", "exercise 3"],
  "youtubeSearchQueries": ["specific search 1", "specific search 2", "specific search 3"]
}`

// BuildPrompt 构造确定性的提示词，相同输入得到相同文本
func BuildPrompt(in GenerateInput) string {
	return fmt.Sprintf(promptTemplate, in.Topic, in.ModuleTitle, in.Difficulty, in.TargetGoal)
}

// ContentGenerator 调用 AI Provider 生成原始文本
type ContentGenerator struct {
	provider providertypes.Provider
	model    string
	logger   *logger.Logger
}

// NewContentGenerator creates a generator bound to a fixed model
func NewContentGenerator(provider providertypes.Provider, model string, log *logger.Logger) *ContentGenerator {
	return &ContentGenerator{
		provider: provider,
		model:    model,
		logger:   log.Named("generator"),
	}
}

// Generate 单次非流式补全，不重试
func (g *ContentGenerator) Generate(ctx context.Context, in GenerateInput) (string, error) {
	req := providertypes.ChatCompletionRequest{
		Model:    g.model,
		Messages: []providertypes.Message{providertypes.UserMessage(BuildPrompt(in))},
	}

	g.logger.Info("generating topic content",
		zap.String("provider", g.provider.Name()),
		zap.String("model", g.model),
		zap.String("topic", in.Topic))

	resp, err := g.provider.CreateChatCompletion(ctx, req)
	if err != nil {
		g.logger.Error("generation failed", zap.String("topic", in.Topic), zap.Error(err))
		return "", apperrors.NewGenerationError(err)
	}

	text, ok := resp.FirstText()
	if !ok {
		g.logger.Error("generation returned no choices", zap.String("topic", in.Topic))
		return "", apperrors.NewGenerationError(providertypes.ErrNoChoices)
	}
	if strings.TrimSpace(text) == "" {
		g.logger.Error("generation returned empty text", zap.String("topic", in.Topic))
		return "", apperrors.NewGenerationError(fmt.Errorf("empty response from AI"))
	}

	return text, nil
}
