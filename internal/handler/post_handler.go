package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postforge/internal/service"
)

// GetPosts 返回分页的生成历史。
func (a *API) GetPosts(c *gin.Context) {
	result, err := a.posts.List(service.PostFilter{
		UserID: c.Query("userId"),
		Limit:  parseIntQuery(c, "limit", 0),
		Offset: parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Posts,
		"pagination": gin.H{
			"total":   result.Total,
			"limit":   result.Limit,
			"offset":  result.Offset,
			"hasMore": result.HasMore,
		},
	})
}

// GetPost 返回单条生成记录。
func (a *API) GetPost(c *gin.Context) {
	post, err := a.posts.Get(c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

// GetStats 返回生成记录的汇总统计。
func (a *API) GetStats(c *gin.Context) {
	overview, err := a.stats.Overview()
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": overview})
}
