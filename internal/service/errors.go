package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrRateLimited 表示 AI 平台触发限流，调用方可稍后重试。
	ErrRateLimited = errors.New("ai provider rate limited")
	// ErrProviderFailed 表示 AI 平台调用失败（网络、协议或平台侧错误）。
	ErrProviderFailed = errors.New("ai provider request failed")
	// ErrStoreUnavailable 表示数据库连接不可用。
	ErrStoreUnavailable = errors.New("database connection failed")
	// ErrPostNotFound 表示指定的生成记录不存在。
	ErrPostNotFound = errors.New("generated post not found")
)

// FieldError 描述单个字段的校验失败信息。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 聚合调用方输入的字段级校验错误。
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field.Field, field.Message))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// classifyStoreError 区分“数据库不可达”与“语句执行失败”两类存储错误。
// 底层连接 Ping 不通时归类为 ErrStoreUnavailable，否则保留原始错误并附加操作上下文。
func classifyStoreError(gdb *gorm.DB, op string, err error) error {
	if err == nil {
		return nil
	}

	sqlDB, dbErr := gdb.DB()
	if dbErr != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, dbErr)
	}
	if pingErr := sqlDB.Ping(); pingErr != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, pingErr)
	}

	return fmt.Errorf("%s: %w", op, err)
}
