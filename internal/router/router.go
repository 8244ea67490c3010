package router

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/postforge/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由。
func SetupRouter(api *handler.API) *gin.Engine {
	r := gin.Default()

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	})
	r.LoadHTMLGlob("web/template/*.html")

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 生成历史页面
	r.GET("/", api.ShowHistory)

	// API 路由
	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/generate", api.GeneratePost)
		apiGroup.GET("/posts", api.GetPosts)
		apiGroup.GET("/posts/:id", api.GetPost)
		apiGroup.GET("/stats", api.GetStats)
	}

	return r
}
