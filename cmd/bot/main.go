package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/internal/adapter/handler"
	"github.com/video-assistant-team/video-assistant/internal/infrastructure/cache"
	"github.com/video-assistant-team/video-assistant/internal/usecase/assistant"
	"github.com/video-assistant-team/video-assistant/internal/usecase/qa"
	"github.com/video-assistant-team/video-assistant/internal/usecase/session"
	"github.com/video-assistant-team/video-assistant/internal/usecase/summary"
	"github.com/video-assistant-team/video-assistant/internal/usecase/transcript"
	"github.com/video-assistant-team/video-assistant/pkg/ai"
	"github.com/video-assistant-team/video-assistant/pkg/config"
	pkgvalidator "github.com/video-assistant-team/video-assistant/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())

	// Cache backend is selected once here; the choice holds for the
	// process lifetime.
	logger.Info("initializing cache")
	store := cache.New(cfg, logger)
	videoCache := cache.NewVideoCache(store, cfg.Cache.TTL, logger)

	// AI clients are shared, read-mostly resources; constructed once and
	// passed by reference.
	logger.Info("initializing AI clients",
		zap.String("chat_model", cfg.OpenRouter.ChatModel),
		zap.String("embedding_model", cfg.Embedding.Model),
	)
	chatClient := ai.NewChatClient(&cfg.OpenRouter, logger)
	embedder := ai.NewEmbeddingClient(&cfg.Embedding, logger)

	// Usecases
	sessions := session.NewStore(&cfg.Session, logger)
	transcripts := transcript.NewService(chatClient, videoCache, cfg, logger)
	engine := qa.NewEngine(chatClient, embedder, cfg, logger)
	summaries := summary.NewService(chatClient, videoCache, cfg, logger)
	assistantSvc := assistant.NewService(sessions, transcripts, engine, summaries, embedder, cfg, logger)

	// HTTP surface
	chatHandler := handler.NewChatHandler(assistantSvc, logger)
	chatHandler.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down", zap.Int("active_sessions", sessions.Active()))
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
