package types

import (
	"bytes"
	"encoding/json"
	"time"
)

// 难度等级
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Topic 学习路线中的一个知识点，(ModuleID, Title) 全局唯一
type Topic struct {
	ID         string          `json:"id"`
	ModuleID   string          `json:"module_id"`
	Title      string          `json:"title"`
	Difficulty string          `json:"difficulty"`
	Content    json.RawMessage `json:"content"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// HasContent reports whether the topic holds generated content
func (t *Topic) HasContent() bool {
	return t != nil && !IsEmptyContent(t.Content)
}

// IsEmptyContent treats SQL NULL, JSON null and {} as empty
func IsEmptyContent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	switch string(trimmed) {
	case "null", "{}":
		return true
	}
	return false
}

// TopicContent 生成后的结构化学习内容。列表字段始终序列化为 []
type TopicContent struct {
	Explanation   string         `json:"explanation"`
	KeyPoints     []string       `json:"keyPoints"`
	Applications  []string       `json:"applications"`
	Pitfalls      []string       `json:"pitfalls"`
	PracticeIdeas []string       `json:"practiceIdeas"`
	YouTubeVideos []YouTubeVideo `json:"youtubeVideos"`
	Topic         string         `json:"topic"`
	ModuleID      string         `json:"moduleId"`
	ModuleTitle   string         `json:"moduleTitle"`
	Difficulty    string         `json:"difficulty"`
	GeneratedAt   string         `json:"generatedAt"`
}

// YouTubeVideo 视频搜索链接
type YouTubeVideo struct {
	Title      string `json:"title"`
	SearchURL  string `json:"searchUrl"`
	EmbedQuery string `json:"embedQuery"`
}

// GenerateRequest POST /generate-topic-content 请求体
type GenerateRequest struct {
	ModuleID    string `json:"moduleId" binding:"required"`
	ModuleTitle string `json:"moduleTitle"`
	Topic       string `json:"topic" binding:"required"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	TargetGoal  string `json:"targetGoal"`
}

// ContentResponse 内容接口响应，content 可能为 null
type ContentResponse struct {
	Content json.RawMessage `json:"content"`
}
