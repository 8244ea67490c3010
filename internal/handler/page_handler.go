package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/postforge/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const historyPageSize = 10

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}

type historyItem struct {
	ID        string
	Prompt    string
	Platform  string
	Content   template.HTML
	CreatedAt time.Time
}

// ShowHistory 渲染生成历史页面，正文经 Markdown 渲染并消毒后输出。
func (a *API) ShowHistory(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}

	result, err := a.posts.List(service.PostFilter{
		Limit:  historyPageSize,
		Offset: (page - 1) * historyPageSize,
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "history.html", gin.H{
			"error": "历史记录暂时不可用",
		})
		return
	}

	items := make([]historyItem, 0, len(result.Posts))
	for _, post := range result.Posts {
		rendered, renderErr := renderMarkdown(post.Content)
		if renderErr != nil {
			rendered = template.HTML(template.HTMLEscapeString(post.Content))
		}

		platform := service.PlatformGeneral
		if post.Platform != nil && *post.Platform != "" {
			platform = *post.Platform
		}

		items = append(items, historyItem{
			ID:        post.ID,
			Prompt:    post.Prompt,
			Platform:  platform,
			Content:   rendered,
			CreatedAt: post.CreatedAt,
		})
	}

	totalPages := int((result.Total + historyPageSize - 1) / historyPageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	c.HTML(http.StatusOK, "history.html", gin.H{
		"items":      items,
		"page":       page,
		"totalPages": totalPages,
		"total":      result.Total,
		"hasPrev":    page > 1,
		"hasNext":    result.HasMore,
	})
}
