package handler

import (
	"github.com/postforge/internal/config"
	"github.com/postforge/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	cfg        config.AppConfig
	generation *service.GenerationService
	posts      *service.PostQueryService
	stats      *service.StatsService
	system     *service.SystemSettingService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig) *API {
	systemService := service.NewSystemSettingService(gdb)
	captionService := service.NewAICaptionService(systemService)

	return &API{
		db:         gdb,
		cfg:        cfg,
		generation: service.NewGenerationService(gdb, captionService),
		posts:      service.NewPostQueryService(gdb),
		stats:      service.NewStatsService(gdb),
		system:     systemService,
	}
}

// SetCaptionGenerator 覆盖默认的文案生成实现，主要用于测试。
func (a *API) SetCaptionGenerator(generator service.CaptionGenerator) {
	a.generation = service.NewGenerationService(a.db, generator)
}
