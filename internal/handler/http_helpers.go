package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/postforge/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondServiceError 将业务层错误映射到对应的 HTTP 状态码与响应信封。
func (a *API) respondServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation error",
			"details": verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrRateLimited):
		respondError(c, http.StatusTooManyRequests, "AI provider rate limit exceeded, please try again later")
	case errors.Is(err, service.ErrStoreUnavailable):
		message := "Service temporarily unavailable"
		if a.cfg.ExposeErrorDetails() {
			message = err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Database connection failed",
			"message": message,
		})
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, service.ErrAIAPIKeyMissing):
		respondError(c, http.StatusInternalServerError, "AI provider is not configured")
	case errors.Is(err, service.ErrProviderFailed):
		respondError(c, http.StatusInternalServerError, "Failed to generate content")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// respondBindingError 把请求体绑定失败统一转换为 400 校验错误信封。
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]service.FieldError, 0, len(verrs))
		for _, fieldErr := range verrs {
			details = append(details, service.FieldError{
				Field:   strings.ToLower(fieldErr.Field()),
				Message: bindingFieldMessage(fieldErr),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation error",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Validation error",
		"details": []service.FieldError{{Field: "body", Message: "request body must be a valid JSON object"}},
	})
}

func bindingFieldMessage(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
