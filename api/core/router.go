package core

import (
	"github.com/gin-gonic/gin"
	"github.com/pinstash/pinstash/api"
	"github.com/pinstash/pinstash/api/common"
	handlerMedia "github.com/pinstash/pinstash/api/handler/media"
	"github.com/pinstash/pinstash/api/middleware"
	"github.com/pinstash/pinstash/config"
	"github.com/pinstash/pinstash/database"
	"github.com/pinstash/pinstash/internal/auth"
	svcMedia "github.com/pinstash/pinstash/internal/media"
	"github.com/pinstash/pinstash/storage"
)

// RouterDependencies 路由注册依赖
type RouterDependencies struct {
	Provider        database.Provider
	StorageFactory  *storage.Factory
	AuthService     *auth.Service
	JWTService      *auth.JWTService
	UploadedService *svcMedia.Service
	SavedService    *svcMedia.Service
	AuthRateLimiter *middleware.IPRateLimiter
	Config          *config.Config
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	registerBasicRoutes(router, deps)
	registerAuthRoutes(router, deps)
	registerMediaRoutes(router, deps)
}

// registerBasicRoutes 注册基础路由
func registerBasicRoutes(router *gin.Engine, deps *RouterDependencies) {
	healthHandler := NewHealthHandler(deps.Provider, deps.StorageFactory)
	router.GET("/health", healthHandler.Handle)

	router.GET("/version", func(context *gin.Context) {
		common.Respond(context, 200, "", gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})
}

// registerAuthRoutes 注册注册登录路由
func registerAuthRoutes(router *gin.Engine, deps *RouterDependencies) {
	authHandler := api.NewAuthHandler(deps.AuthService)

	authGroup := router.Group("/")
	if deps.AuthRateLimiter != nil {
		authGroup.Use(deps.AuthRateLimiter.Middleware())
	}
	{
		authGroup.POST("/signup", authHandler.SignupHandlerFunc) //POST /signup
		authGroup.POST("/login", authHandler.LoginHandlerFunc)   //POST /login
	}

	router.GET("/me", middleware.RequireAuth(deps.JWTService), authHandler.MeHandlerFunc) //GET /me
}

// registerMediaRoutes 注册图片路由
func registerMediaRoutes(router *gin.Engine, deps *RouterDependencies) {
	uploadedHandler := handlerMedia.NewHandler(deps.UploadedService, "Insert Success",
		"An error occurred while Fetching the images")
	savedHandler := handlerMedia.NewHandler(deps.SavedService, "Saved",
		"An error occurred while Fetching the Saved images")

	router.POST("/upload", uploadedHandler.UploadHandlerFunc)       //POST /upload
	router.GET("/upload/:userId", uploadedHandler.ListHandlerFunc)  //GET /upload/{userId}
	router.POST("/saved", savedHandler.UploadHandlerFunc)           //POST /saved
	router.GET("/saved/:userId", savedHandler.ListHandlerFunc)      //GET /saved/{userId}

	// 上传目录对外的固定访问前缀，统一走存储提供者以兼容非本地后端
	fileServer := handlerMedia.NewFileServer(deps.StorageFactory.GetDefault())
	router.GET("/Images/:filename", fileServer.GetFileHandlerFunc) //GET /Images/{filename}
}
