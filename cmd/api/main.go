// @title Vocabulary Quiz API
// @version 1.0
// @description Daily English vocabulary quiz: sampled multiple-choice sessions and pronunciation lookup.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "vocab-quiz/cmd/api/docs"
	"vocab-quiz/internal/bootstrap"
	"vocab-quiz/internal/config"
	"vocab-quiz/internal/handler"
	"vocab-quiz/internal/logger"
	"vocab-quiz/internal/middleware"
	"vocab-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := bootstrap.New(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	tokens, err := service.NewSessionTokenService(cfg.Session.Secret, cfg.Quiz.SessionTTL)
	if err != nil {
		appLogger.Fatal("Failed to create session token service", zap.Error(err))
	}
	if cfg.Session.Secret == "" {
		appLogger.Warn("session.secret is empty, using a random key; quiz cookies will not survive a restart")
	}

	// Initialize handlers
	pageHandler := handler.NewPageHandler(services.Quiz, services.Pronunciation, tokens, cfg.Session.CookieName, cfg.Quiz.SessionTTL)
	quizHandler := handler.NewQuizHandler(services.Quiz, services.Pronunciation)
	healthHandler := handler.NewHealthHandler(services.Quiz, services.Cache)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    64 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	apiGroup := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	apiGroup.Get("/health", healthHandler.Check)
	quizHandler.RegisterRoutes(apiGroup)

	// Server rendered quiz
	pageHandler.RegisterRoutes(app)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		return app.Listen(":" + strconv.Itoa(cfg.Server.Port))
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}
