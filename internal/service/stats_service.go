package service

import (
	"github.com/postforge/internal/db"
	"gorm.io/gorm"
)

// PlatformCount 统计单个平台标签下的生成次数。
type PlatformCount struct {
	Platform string `json:"platform"`
	Count    int64  `json:"count"`
}

// StatsOverview 汇总生成记录的整体统计。
type StatsOverview struct {
	TotalPosts       int64           `json:"totalPosts"`
	Platforms        []PlatformCount `json:"platforms"`
	PromptTokens     int64           `json:"promptTokens"`
	CompletionTokens int64           `json:"completionTokens"`
}

// StatsService 提供生成记录的聚合统计能力。
type StatsService struct {
	db *gorm.DB
}

// NewStatsService 构造 StatsService。
func NewStatsService(gdb *gorm.DB) *StatsService {
	return &StatsService{db: gdb}
}

// Overview 返回生成总量、平台分布与 token 用量汇总。
func (s *StatsService) Overview() (*StatsOverview, error) {
	result := &StatsOverview{Platforms: []PlatformCount{}}

	if err := s.db.Model(&db.GeneratedPost{}).Count(&result.TotalPosts).Error; err != nil {
		return nil, classifyStoreError(s.db, "count generated posts", err)
	}

	var rows []PlatformCount
	if err := s.db.Model(&db.GeneratedPost{}).
		Select("COALESCE(platform, 'general') AS platform, COUNT(*) AS count").
		Group("COALESCE(platform, 'general')").
		Order("count DESC, platform ASC").
		Scan(&rows).Error; err != nil {
		return nil, classifyStoreError(s.db, "aggregate platform counts", err)
	}
	if rows != nil {
		result.Platforms = rows
	}

	var usage struct {
		PromptTokens     int64
		CompletionTokens int64
	}
	if err := s.db.Model(&db.GeneratedPost{}).
		Select("COALESCE(SUM(prompt_tokens), 0) AS prompt_tokens, COALESCE(SUM(completion_tokens), 0) AS completion_tokens").
		Scan(&usage).Error; err != nil {
		return nil, classifyStoreError(s.db, "aggregate token usage", err)
	}
	result.PromptTokens = usage.PromptTokens
	result.CompletionTokens = usage.CompletionTokens

	return result, nil
}
