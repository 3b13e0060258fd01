package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pinstash/pinstash/api/core"
	"github.com/pinstash/pinstash/config"
	"github.com/pinstash/pinstash/database"
	repoAccounts "github.com/pinstash/pinstash/database/repo/accounts"
	repoMedia "github.com/pinstash/pinstash/database/repo/media"
	"github.com/pinstash/pinstash/internal/auth"
	svcMedia "github.com/pinstash/pinstash/internal/media"
	"github.com/pinstash/pinstash/storage"
	cryptopackage "github.com/pinstash/pinstash/utils/crypto"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 数据库
	provider, err := database.NewGormProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Printf("Initializing database, database type: %s", provider.Name())

	if err := database.Migrate(provider); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}
	log.Println("Database initialized successfully")

	// 存储
	storageFactory, err := storage.NewFactory(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// 服务
	jwtService, err := auth.NewJWTService(cfg.AuthJWTSecret, cfg.AuthTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	hashParams := cryptopackage.Params{
		Memory:      uint32(cfg.HashMemoryKB),
		Iterations:  uint32(cfg.HashIterations),
		Parallelism: uint8(cfg.HashParallelism),
	}

	db := provider.DB()
	authService := auth.NewService(repoAccounts.NewRepository(db), jwtService, hashParams)

	defaultProvider := storageFactory.GetDefault()
	uploadedService := svcMedia.NewService(repoMedia.NewUploadedRepository(db), defaultProvider, "file")
	savedService := svcMedia.NewService(repoMedia.NewSavedRepository(db), defaultProvider, "file")

	// 创建服务器依赖
	deps := &core.ServerDependencies{
		RouterDependencies: core.RouterDependencies{
			Provider:        provider,
			StorageFactory:  storageFactory,
			AuthService:     authService,
			JWTService:      jwtService,
			UploadedService: uploadedService,
			SavedService:    savedService,
			Config:          cfg,
		},
	}

	// 启动gin
	server, cleanup := core.StartServer(deps)
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// 处理退出signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanup != nil {
		cleanup()
		log.Println("Cleanup tasks finished.")
	}

	if err := provider.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited successfully")
}
