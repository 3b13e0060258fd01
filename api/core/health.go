package core

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pinstash/pinstash/config"
	"github.com/pinstash/pinstash/database"
	"github.com/pinstash/pinstash/storage"
)

var startTime = time.Now()

// HealthHandler 健康检查处理器
type HealthHandler struct {
	provider       database.Provider
	storageFactory *storage.Factory
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(provider database.Provider, storageFactory *storage.Factory) *HealthHandler {
	return &HealthHandler{
		provider:       provider,
		storageFactory: storageFactory,
	}
}

// Handle 返回各依赖的健康状态
func (h *HealthHandler) Handle(c *gin.Context) {
	checks := gin.H{
		"database": h.checkDatabase(),
		"storage":  h.checkStorage(c.Request.Context()),
	}

	httpStatus := http.StatusOK
	for _, checkResult := range checks {
		if result, ok := checkResult.(string); ok && result != "ok" {
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":  "ok",
		"uptime":  time.Since(startTime).Round(time.Second).String(),
		"version": config.Version,
		"checks":  checks,
	})
}

func (h *HealthHandler) checkDatabase() string {
	if h.provider == nil {
		return "not initialized"
	}
	if err := h.provider.Ping(); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func (h *HealthHandler) checkStorage(ctx context.Context) string {
	if h.storageFactory == nil {
		return "not initialized"
	}

	provider := h.storageFactory.GetDefault()
	if provider == nil {
		return "error: no default storage provider"
	}

	if err := provider.Health(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
