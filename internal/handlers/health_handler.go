package handlers

import (
	"database/sql"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todoapp/backend/internal/database"
)

// HealthHandler はDB疎通を含むヘルスチェックです。
type HealthHandler struct {
	db     *sql.DB
	logger *log.Logger
}

func NewHealthHandler(db *sql.DB, logger *log.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		h.logger.Warn("health check failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": "Database connection failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
