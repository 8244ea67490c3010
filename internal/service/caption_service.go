package service

import (
	"context"
	"fmt"
	"strings"
)

const (
	defaultOpenAICaptionModel   = "gpt-4o-mini"
	defaultDeepSeekCaptionModel = "deepseek-chat"
	defaultCaptionMaxTokens     = 512
	defaultCaptionTemperature   = 0.7
	// PlatformGeneral 是未指定平台时用于提示词的默认语气标签。
	PlatformGeneral = "general"
)

const defaultCaptionSystemPrompt = `You are a social media content expert. Create an engaging %s post based on the topic the user provides. Match the tone and typical length conventions of %s. Respond with a JSON object containing exactly two fields: "caption" (a string with the post text) and "hashtags" (an array of 3-6 relevant hashtag strings, each starting with #). Do not include any other text outside the JSON object.`

// CaptionInput 描述一次文案生成所需的上下文。
type CaptionInput struct {
	Prompt   string
	Platform string
}

// CaptionResult 返回平台原始文本及用量信息，由上层负责结构化解析。
type CaptionResult struct {
	Raw              string
	PromptTokens     int
	CompletionTokens int
}

// CaptionGenerator 定义文案生成能力，便于在业务层注入不同实现。
type CaptionGenerator interface {
	GenerateCaption(ctx context.Context, input CaptionInput) (CaptionResult, error)
}

// AICaptionService 基于大模型接口生成社交媒体文案。
type AICaptionService struct {
	client *aiChatClient
}

// NewAICaptionService 构造默认的 AICaptionService。
func NewAICaptionService(settings *SystemSettingService) *AICaptionService {
	return &AICaptionService{
		client: newAIChatClient(settings, defaultOpenAICaptionModel, defaultDeepSeekCaptionModel),
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *AICaptionService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetOpenAIBaseURL 覆盖默认的 OpenAI API 地址。
func (s *AICaptionService) SetOpenAIBaseURL(base string) {
	s.client.SetOpenAIBaseURL(base)
}

// SetDeepSeekBaseURL 覆盖默认的 DeepSeek API 地址。
func (s *AICaptionService) SetDeepSeekBaseURL(base string) {
	s.client.SetDeepSeekBaseURL(base)
}

// GenerateCaption 调用当前配置的 AI 平台生成文案，请求结构化 JSON 输出。
// 未配置 API Key 时返回 ErrAIAPIKeyMissing。
func (s *AICaptionService) GenerateCaption(ctx context.Context, input CaptionInput) (CaptionResult, error) {
	platform := ResolvePlatform(input.Platform)

	settings, err := s.client.settings.GetSettings()
	if err != nil {
		return CaptionResult{}, fmt.Errorf("读取系统设置失败: %w", err)
	}

	systemPrompt := strings.TrimSpace(settings.GenerationPrompt)
	if systemPrompt == "" {
		systemPrompt = fmt.Sprintf(defaultCaptionSystemPrompt, platform, platform)
	}

	logCaptionExchange("prompt", input.Prompt)

	result, err := s.client.callWithSettings(ctx, settings, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   input.Prompt,
		MaxTokens:    defaultCaptionMaxTokens,
		Temperature:  defaultCaptionTemperature,
		JSONResponse: true,
	})
	if err != nil {
		return CaptionResult{}, err
	}

	logCaptionExchange("response", result.Content)

	return CaptionResult{
		Raw:              result.Content,
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
	}, nil
}

// ResolvePlatform 归一化平台标签，空值回退到 general。
func ResolvePlatform(platform string) string {
	trimmed := strings.ToLower(strings.TrimSpace(platform))
	if trimmed == "" {
		return PlatformGeneral
	}
	return trimmed
}
