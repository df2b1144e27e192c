// File: app/app.go
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devkingori/alika/config"
	"github.com/devkingori/alika/db"
	"github.com/devkingori/alika/handler"
	"github.com/devkingori/alika/logger"
	"github.com/devkingori/alika/repository"
	"github.com/devkingori/alika/router"
	"github.com/devkingori/alika/service"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---
	tokenCfg := service.TokenConfig{
		SecretKey:  config.AppConfig.JWT.SecretKey,
		AccessTTL:  config.AppConfig.JWT.AccessTTL,
		RefreshTTL: config.AppConfig.JWT.RefreshTTL,
	}

	userRepo := repository.NewUserRepository(database)
	campaignRepo := repository.NewCampaignRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	bannerRepo := repository.NewBannerRepository(database)

	authService := service.NewAuthService(userRepo, tokenCfg)
	userService := service.NewUserService(userRepo)
	campaignService := service.NewCampaignService(campaignRepo, redisClient)
	categoryService := service.NewCategoryService(categoryRepo)
	bannerService := service.NewBannerService(bannerRepo, campaignRepo)

	authMW := handler.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)
	campaignHandler := handler.NewCampaignHandler(campaignService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	bannerHandler := handler.NewBannerHandler(bannerService)
	userHandler := handler.NewUserHandler(userService)

	r := router.NewRouter(authMW, authHandler, campaignHandler, categoryHandler, bannerHandler, userHandler)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
