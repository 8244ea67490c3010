package service

import (
	"encoding/json"
	"strings"
)

// StructuredContent 是解析平台结构化输出后的标准结果。
type StructuredContent struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// FullText 拼接正文与话题标签，作为持久化的规范文本。
func (c StructuredContent) FullText() string {
	if len(c.Hashtags) == 0 {
		return c.Caption
	}
	return c.Caption + "\n\n" + strings.Join(c.Hashtags, " ")
}

// ParseStructuredContent 尝试把平台返回文本解析成 {caption, hashtags}，
// 第二个返回值标识是否走了结构化路径。解析失败、caption 缺失或 hashtags
// 不是字符串数组时，整段原始文本降级为 caption，hashtags 置空。该降级
// 路径永不报错，是平台忽略结构化输出指令时的既定行为。
func ParseStructuredContent(raw string) (StructuredContent, bool) {
	candidate := stripCodeFence(raw)

	var parsed struct {
		Caption  string          `json:"caption"`
		Hashtags json.RawMessage `json:"hashtags"`
	}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return fallbackContent(raw), false
	}

	caption := strings.TrimSpace(parsed.Caption)
	if caption == "" {
		return fallbackContent(raw), false
	}

	if len(parsed.Hashtags) == 0 || string(parsed.Hashtags) == "null" {
		return fallbackContent(raw), false
	}

	var hashtags []string
	if err := json.Unmarshal(parsed.Hashtags, &hashtags); err != nil {
		return fallbackContent(raw), false
	}
	if hashtags == nil {
		hashtags = []string{}
	}

	return StructuredContent{Caption: caption, Hashtags: hashtags}, true
}

func fallbackContent(raw string) StructuredContent {
	return StructuredContent{Caption: raw, Hashtags: []string{}}
}

// stripCodeFence 去掉模型偶尔包裹在 JSON 外层的 Markdown 代码块标记。
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
