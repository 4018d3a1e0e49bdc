package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mise-app/backend/config"
	"github.com/mise-app/backend/internal/api"
	"github.com/mise-app/backend/internal/database"
	"github.com/mise-app/backend/internal/middleware"
	"github.com/mise-app/backend/internal/router"
	"github.com/mise-app/backend/internal/server"
	"github.com/mise-app/backend/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()

	llmService, err := service.NewLLMService(cfg, logger)
	if err != nil {
		logger.Fatal("failed to configure structuring service", zap.Error(err))
	}

	speechService, err := service.NewGoogleSpeechService(ctx, logger)
	if err != nil {
		logger.Fatal("failed to configure speech service", zap.Error(err))
	}
	defer func() { _ = speechService.Close() }()

	// Rate limiting degrades to a no-op when redis is unavailable.
	var generationLimiter *middleware.RateLimiter
	if redisClient, err := database.NewRedisClient(cfg, logger); err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
	} else {
		generationLimiter = middleware.NewGenerationRateLimiter(redisClient)
	}

	// Audio archiving is optional; enabled by S3_BUCKET_NAME.
	var archiver *service.AudioArchiver
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logger.Warn("S3 unavailable, audio archiving disabled", zap.Error(err))
	} else if s3cfg != nil {
		archiver = service.NewAudioArchiver(s3cfg, logger)
	}

	recipeService := service.NewRecipeService(db)
	transcriptService := service.NewTranscriptService(db, llmService, logger)

	engine := router.SetupRouter(
		api.NewPageHandler(recipeService, logger),
		api.NewRecipeHandler(recipeService, logger),
		api.NewTranscriptHandler(transcriptService, logger),
		api.NewTranscribeHandler(speechService, archiver, logger),
		generationLimiter,
	)

	srv := server.New(engine, cfg, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
