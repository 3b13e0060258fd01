package core

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pinstash/pinstash/api/middleware"
	"github.com/pinstash/pinstash/config"
)

// ServerDependencies 服务器依赖项
type ServerDependencies struct {
	RouterDependencies
}

// setupRouter 构建 gin 引擎
func setupRouter(deps *ServerDependencies) (*gin.Engine, func()) {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Get()
	}

	// 仅在开发版本时启用 gin 日志
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if !config.IsProduction() {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())

	allowOrigins := []string{cfg.CORSAllowOrigin}
	allowCredentials := true
	if cfg.CORSAllowOrigin == "" || cfg.CORSAllowOrigin == "*" {
		allowOrigins = []string{"*"}
		allowCredentials = false
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// 限制上传文件大小
	router.MaxMultipartMemory = int64(cfg.UploadMaxSizeMB) << 20

	// 认证路由限流，RPS 配置为 0 时不挂载
	// rate.Limit(0) 表示令牌桶永不补充，挂上去等于把认证路由封死。
	cleanup := func() {}
	if cfg.RateLimitAuthRPS > 0 {
		authRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst, cfg.RateLimitExpireTime)
		deps.AuthRateLimiter = authRateLimiter
		cleanup = func() {
			authRateLimiter.StopCleanup()
		}
	}

	RegisterRoutes(router, &deps.RouterDependencies)

	return router, cleanup
}

// StartServer 创建 http.Server
func StartServer(deps *ServerDependencies) (*http.Server, func()) {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Get()
	}

	router, clean := setupRouter(deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return srv, clean
}
