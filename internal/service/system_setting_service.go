package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/postforge/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// AIProviderOpenAI 表示使用 OpenAI 能力。
	AIProviderOpenAI = "openai"
	// AIProviderDeepSeek 表示使用 DeepSeek 能力。
	AIProviderDeepSeek = "deepseek"
)

var supportedAIProviders = []string{AIProviderOpenAI, AIProviderDeepSeek}

// ErrAIAPIKeyMissing 表示未提供必需的 AI 平台 API Key。
var ErrAIAPIKeyMissing = errors.New("api key is required")

// SystemSettings 描述可配置的 AI 平台信息。
type SystemSettings struct {
	AIProvider       string
	OpenAIAPIKey     string
	DeepSeekAPIKey   string
	OpenAIModel      string
	DeepSeekModel    string
	GenerationPrompt string
}

// SystemSettingsInput 用于更新系统设置。
type SystemSettingsInput struct {
	AIProvider       string
	OpenAIAPIKey     string
	DeepSeekAPIKey   string
	OpenAIModel      string
	DeepSeekModel    string
	GenerationPrompt string
}

// SystemSettingService 提供系统设置的读取与更新能力。
type SystemSettingService struct {
	db *gorm.DB
}

// NewSystemSettingService 构造 SystemSettingService。
func NewSystemSettingService(gdb *gorm.DB) *SystemSettingService {
	return &SystemSettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeyAIProvider,
	db.SettingKeyOpenAIAPIKey,
	db.SettingKeyDeepSeekAPIKey,
	db.SettingKeyOpenAIModel,
	db.SettingKeyDeepSeekModel,
	db.SettingKeyGenerationPrompt,
}

// GetSettings 读取系统设置，如未设置将返回默认值。
func (s *SystemSettingService) GetSettings() (SystemSettings, error) {
	result := SystemSettings{AIProvider: AIProviderOpenAI}

	var records []db.SystemSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, classifyStoreError(s.db, "load system settings", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeyAIProvider:
			if provider := normalizeAIProvider(record.Value); provider != "" {
				result.AIProvider = provider
			}
		case db.SettingKeyOpenAIAPIKey:
			result.OpenAIAPIKey = record.Value
		case db.SettingKeyDeepSeekAPIKey:
			result.DeepSeekAPIKey = record.Value
		case db.SettingKeyOpenAIModel:
			result.OpenAIModel = record.Value
		case db.SettingKeyDeepSeekModel:
			result.DeepSeekModel = record.Value
		case db.SettingKeyGenerationPrompt:
			result.GenerationPrompt = record.Value
		}
	}

	return result, nil
}

// UpdateSettings 保存系统设置，未指定平台时回退到 OpenAI。
func (s *SystemSettingService) UpdateSettings(input SystemSettingsInput) (SystemSettings, error) {
	provider := normalizeAIProvider(input.AIProvider)
	if provider == "" {
		provider = AIProviderOpenAI
	}

	sanitized := SystemSettings{
		AIProvider:       provider,
		OpenAIAPIKey:     strings.TrimSpace(input.OpenAIAPIKey),
		DeepSeekAPIKey:   strings.TrimSpace(input.DeepSeekAPIKey),
		OpenAIModel:      strings.TrimSpace(input.OpenAIModel),
		DeepSeekModel:    strings.TrimSpace(input.DeepSeekModel),
		GenerationPrompt: strings.TrimSpace(input.GenerationPrompt),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		pairs := map[string]string{
			db.SettingKeyAIProvider:       sanitized.AIProvider,
			db.SettingKeyOpenAIAPIKey:     sanitized.OpenAIAPIKey,
			db.SettingKeyDeepSeekAPIKey:   sanitized.DeepSeekAPIKey,
			db.SettingKeyOpenAIModel:      sanitized.OpenAIModel,
			db.SettingKeyDeepSeekModel:    sanitized.DeepSeekModel,
			db.SettingKeyGenerationPrompt: sanitized.GenerationPrompt,
		}
		for _, key := range settingKeys {
			if err := upsertSetting(tx, key, pairs[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SystemSettings{}, fmt.Errorf("update system settings: %w", err)
	}

	return sanitized, nil
}

// EnsureDefaults 以环境变量提供的值补全尚未配置的设置项。
// 密钥、模型与提示词只在缺失时写入；平台选择以环境变量为准。
func (s *SystemSettingService) EnsureDefaults(input SystemSettingsInput) error {
	current, err := s.GetSettings()
	if err != nil {
		return err
	}

	merged := SystemSettingsInput{
		AIProvider:       current.AIProvider,
		OpenAIAPIKey:     current.OpenAIAPIKey,
		DeepSeekAPIKey:   current.DeepSeekAPIKey,
		OpenAIModel:      current.OpenAIModel,
		DeepSeekModel:    current.DeepSeekModel,
		GenerationPrompt: current.GenerationPrompt,
	}

	if normalizeAIProvider(input.AIProvider) != "" {
		merged.AIProvider = input.AIProvider
	}
	if merged.OpenAIAPIKey == "" {
		merged.OpenAIAPIKey = strings.TrimSpace(input.OpenAIAPIKey)
	}
	if merged.DeepSeekAPIKey == "" {
		merged.DeepSeekAPIKey = strings.TrimSpace(input.DeepSeekAPIKey)
	}
	if merged.OpenAIModel == "" {
		merged.OpenAIModel = strings.TrimSpace(input.OpenAIModel)
	}
	if merged.DeepSeekModel == "" {
		merged.DeepSeekModel = strings.TrimSpace(input.DeepSeekModel)
	}
	if merged.GenerationPrompt == "" {
		merged.GenerationPrompt = strings.TrimSpace(input.GenerationPrompt)
	}

	_, err = s.UpdateSettings(merged)
	return err
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

func normalizeAIProvider(provider string) string {
	trimmed := strings.ToLower(strings.TrimSpace(provider))
	for _, candidate := range supportedAIProviders {
		if trimmed == candidate {
			return candidate
		}
	}
	return ""
}
