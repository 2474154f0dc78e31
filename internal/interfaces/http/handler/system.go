package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartbill/backend/internal/infrastructure/persistence"
)

// SystemHandler exposes health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
	env     string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName, env string) *SystemHandler {
	return &SystemHandler{db: db, appName: appName, env: env}
}

// Health handles GET /health. Reports database reachability.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "up"
	code := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = "down"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"app":       h.appName,
		"env":       h.env,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
