package service

import (
	"log"
	"strings"
	"unicode/utf8"
)

const maxCaptionLogRunes = 512

// logCaptionExchange 输出文案生成的提示与响应摘要，方便排查模型行为。
func logCaptionExchange(phase, content string) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		log.Printf("[caption] %s: <empty>", phase)
		return
	}

	runeCount := utf8.RuneCountInString(trimmed)
	snippet := trimmed
	if runeCount > maxCaptionLogRunes {
		snippet = string([]rune(trimmed)[:maxCaptionLogRunes]) + "…(truncated)"
	}
	log.Printf("[caption] %s (runes=%d): %s", phase, runeCount, snippet)
}

// logCaptionOutcome 记录结构化解析结果，降级路径必须在日志中留下痕迹。
func logCaptionOutcome(structured bool, hashtagCount int) {
	if structured {
		log.Printf("[caption] parsed structured output, hashtags=%d", hashtagCount)
		return
	}
	log.Print("[caption] structured parse failed, falling back to plain text")
}
