package biz

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/lk2023060901/ai-learning-backend/internal/topic/types"
	"github.com/tidwall/gjson"
)

const youtubeSearchURL = "https://www.youtube.com/results?search_query="

// generatedAt 使用毫秒精度的 UTC 时间
const generatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// ContentContext 回显到内容中的请求上下文
type ContentContext struct {
	Topic       string
	ModuleID    string
	ModuleTitle string
	Difficulty  string
}

// Normalize 将模型返回的对象整理为 TopicContent，缺失字段使用默认值
func Normalize(obj json.RawMessage, cc ContentContext, now time.Time) types.TopicContent {
	root := gjson.ParseBytes(obj)

	queries := stringList(root.Get("youtubeSearchQueries"))
	videos := make([]types.YouTubeVideo, 0, len(queries))
	for _, q := range queries {
		videos = append(videos, types.YouTubeVideo{
			Title:      q,
			SearchURL:  youtubeSearchURL + url.QueryEscape(q),
			EmbedQuery: q,
		})
	}

	return types.TopicContent{
		Explanation:   stringField(root.Get("explanation")),
		KeyPoints:     stringList(root.Get("keyPoints")),
		Applications:  stringList(root.Get("applications")),
		Pitfalls:      stringList(root.Get("pitfalls")),
		PracticeIdeas: stringList(root.Get("practiceIdeas")),
		YouTubeVideos: videos,
		Topic:         cc.Topic,
		ModuleID:      cc.ModuleID,
		ModuleTitle:   cc.ModuleTitle,
		Difficulty:    cc.Difficulty,
		GeneratedAt:   now.UTC().Format(generatedAtLayout),
	}
}

func stringField(v gjson.Result) string {
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// stringList 非数组返回空切片；非字符串元素转为文本
func stringList(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, item gjson.Result) bool {
		out = append(out, item.String())
		return true
	})
	return out
}
