package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/postforge/internal/config"
	"github.com/postforge/internal/db"
	"github.com/postforge/internal/handler"
	"github.com/postforge/internal/router"
	"github.com/postforge/internal/service"
)

func main() {
	// .env 仅在本地开发存在，缺失时直接使用进程环境变量
	_ = godotenv.Load()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 用环境变量补全尚未配置的 AI 设置
	seed := service.SystemSettingsInput{
		AIProvider:     cfg.AIProvider,
		OpenAIAPIKey:   cfg.OpenAIAPIKey,
		DeepSeekAPIKey: cfg.DeepSeekAPIKey,
	}
	if cfg.AIProvider == service.AIProviderDeepSeek {
		seed.DeepSeekModel = cfg.AIModel
	} else {
		seed.OpenAIModel = cfg.AIModel
	}
	if err := service.NewSystemSettingService(gdb).EnsureDefaults(seed); err != nil {
		log.Fatalf("failed to seed system settings: %v", err)
	}

	// 设置并运行 Gin 服务器
	api := handler.NewAPI(gdb, cfg)
	r := router.SetupRouter(api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
