package types

import (
	"errors"
	"time"
)

var (
	ErrMissingAPIKey  = errors.New("API key is required")
	ErrMissingBaseURL = errors.New("base URL is required")
	ErrMissingModel   = errors.New("model is required")
)

// Config Provider 通用配置
type Config struct {
	APIKey  string        // API Key，必填，无内置默认值
	BaseURL string        // API 基础 URL（OpenAI 兼容）
	Model   string        // 固定模型
	Timeout time.Duration // 请求超时，0 表示不限制
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.Model == "" {
		return ErrMissingModel
	}
	return nil
}
