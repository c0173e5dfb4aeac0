package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todoapp/backend/internal/repositories"
	"todoapp/backend/internal/services"
	"todoapp/backend/internal/validation"
)

const (
	msgValidationFailed   = "Validation failed"
	msgInvalidPayload     = "Invalid request payload"
	msgInvalidCredentials = "Invalid credentials"
	msgTaskNotFound       = "Task not found"
	msgEmailTaken         = "Email already registered"
	msgUnauthorized       = "Unauthorized"
	msgInternal           = "Internal server error"
)

// respondError はエラーの種類に応じたステータスとメッセージを返します。
// 想定外のエラーは詳細をログに残し、クライアントには 500 だけを返します。
func respondError(c *gin.Context, logger *log.Logger, err error) {
	if ve, ok := validation.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgValidationFailed, "errors": ve.Errors})
		return
	}
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": msgTaskNotFound})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgInvalidCredentials})
	case errors.Is(err, repositories.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"message": msgEmailTaken})
	default:
		logger.Error("request failed",
			"err", err,
			"request_id", c.GetString(ContextRequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
	}
}

func respondInvalidPayload(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidPayload})
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
}

func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": msgTaskNotFound})
}
