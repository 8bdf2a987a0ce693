package biz

import (
	"encoding/json"
	"slices"
	"strings"

	apperrors "github.com/lk2023060901/ai-learning-backend/internal/pkg/errors"
	"github.com/tidwall/gjson"
)

var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

// stripFences 去掉 markdown 代码块标记
func stripFences(raw string) string {
	return strings.TrimSpace(fenceReplacer.Replace(raw))
}

// ExtractJSON 从模型输出中提取第一个合法的 JSON 对象。
// 从第一个 '{' 起单遍扫描并配对括号（跳过字符串字面量中的括号），
// 按起始位置依次校验候选片段；都不合法时从字符串内出现的下一个 '{' 重新扫描。
func ExtractJSON(raw string) (json.RawMessage, error) {
	text := stripFences(raw)

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, apperrors.NewParseError("no JSON object in model output")
	}

	for start >= 0 {
		spans, restart := pairBraces(text, start)
		for _, sp := range spans {
			candidate := text[sp.open : sp.close+1]
			if gjson.Valid(candidate) && gjson.Parse(candidate).IsObject() {
				return json.RawMessage(candidate), nil
			}
		}
		start = restart
	}

	return nil, apperrors.NewParseError("model output is not a valid JSON object")
}

type braceSpan struct {
	open, close int
}

// pairBraces 从 start 扫描到末尾，返回按左括号位置排序的配对区间，
// 以及第一个落在字符串字面量内的 '{' 位置（没有时为 -1）。
// 字符串外的 '{' 从自身起扫描得到的配对与本次相同，无需重扫。
func pairBraces(text string, start int) ([]braceSpan, int) {
	var (
		open     []int
		spans    []braceSpan
		restart  = -1
		inString bool
		escaped  bool
	)

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			case ch == '{' && restart < 0:
				restart = i
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			open = append(open, i)
		case '}':
			if n := len(open); n > 0 {
				spans = append(spans, braceSpan{open: open[n-1], close: i})
				open = open[:n-1]
			}
		}
	}

	slices.SortFunc(spans, func(a, b braceSpan) int { return a.open - b.open })
	return spans, restart
}

// SliceOuterBraces 旧的截取方式：去掉代码块标记后取第一个 '{' 到最后一个 '}'。
// 正文里出现多余的括号时结果不是合法 JSON，仅保留用于对照。
func SliceOuterBraces(raw string) string {
	text := stripFences(raw)
	first := strings.IndexByte(text, '{')
	last := strings.LastIndexByte(text, '}')
	if first != -1 && last != -1 && first < last {
		return text[first : last+1]
	}
	return text
}
