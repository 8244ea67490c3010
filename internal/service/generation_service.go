package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/postforge/internal/db"
	"gorm.io/gorm"
)

// maxPromptRuneCount 限制用户提示的最大长度，超出即拒绝，避免浪费外部调用成本。
const maxPromptRuneCount = 1000

// GenerateInput represents fields accepted when requesting a generation.
type GenerateInput struct {
	Prompt   string
	Platform string
	UserID   string
}

// GenerationResult aggregates the persisted record and its structured breakdown.
type GenerationResult struct {
	Post       db.GeneratedPost
	Structured StructuredContent
}

// GenerationService orchestrates the generation pipeline:
// validation, provider call, structured parse with fallback, persistence.
type GenerationService struct {
	db        *gorm.DB
	generator CaptionGenerator
}

// NewGenerationService creates a GenerationService instance.
func NewGenerationService(gdb *gorm.DB, generator CaptionGenerator) *GenerationService {
	return &GenerationService{db: gdb, generator: generator}
}

// Generate 执行完整的生成流水线。输入校验失败时立即返回 ValidationError，
// 不触发任何外部调用；平台调用成功后仅执行一次插入。
func (s *GenerationService) Generate(ctx context.Context, input GenerateInput) (*GenerationResult, error) {
	if verr := validateGenerateInput(input); verr != nil {
		return nil, verr
	}

	platform := strings.TrimSpace(input.Platform)

	caption, err := s.generator.GenerateCaption(ctx, CaptionInput{
		Prompt:   input.Prompt,
		Platform: platform,
	})
	if err != nil {
		return nil, err
	}

	structured, structuredOK := ParseStructuredContent(caption.Raw)
	logCaptionOutcome(structuredOK, len(structured.Hashtags))

	post := db.GeneratedPost{
		Prompt:           input.Prompt,
		Content:          structured.FullText(),
		Platform:         optionalString(platform),
		UserID:           optionalString(strings.TrimSpace(input.UserID)),
		PromptTokens:     caption.PromptTokens,
		CompletionTokens: caption.CompletionTokens,
	}

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		// 外部成本此刻已经产生，持久化失败必须以独立错误类别向上传播。
		return nil, classifyStoreError(s.db, "persist generated post", err)
	}

	return &GenerationResult{Post: post, Structured: structured}, nil
}

func validateGenerateInput(input GenerateInput) *ValidationError {
	var fields []FieldError

	if strings.TrimSpace(input.Prompt) == "" {
		fields = append(fields, FieldError{Field: "prompt", Message: "prompt is required"})
	} else if utf8.RuneCountInString(input.Prompt) > maxPromptRuneCount {
		fields = append(fields, FieldError{Field: "prompt", Message: "prompt must be at most 1000 characters"})
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
