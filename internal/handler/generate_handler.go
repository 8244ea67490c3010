package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postforge/internal/service"
)

type generateRequest struct {
	Prompt   string `json:"prompt" binding:"required,max=1000"`
	Platform string `json:"platform"`
	UserID   string `json:"userId"`
}

// GeneratePost 处理 POST /api/generate，执行生成流水线并返回持久化结果。
func (a *API) GeneratePost(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := a.generation.Generate(c.Request.Context(), service.GenerateInput{
		Prompt:   req.Prompt,
		Platform: req.Platform,
		UserID:   req.UserID,
	})
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":                result.Post.ID,
			"prompt":            result.Post.Prompt,
			"content":           result.Post.Content,
			"structuredContent": result.Structured,
			"platform":          result.Post.Platform,
			"createdAt":         result.Post.CreatedAt,
		},
	})
}
