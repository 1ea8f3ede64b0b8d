package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"vocab-quiz/internal/bootstrap"
	"vocab-quiz/internal/config"
	"vocab-quiz/internal/logger"
	"vocab-quiz/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if cfg.Telegram.Token == "" {
		appLogger.Fatal("telegram.token is required to run the bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := bootstrap.New(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		appLogger.Fatal("Failed to connect to Telegram", zap.Error(err))
	}
	bot.Debug = cfg.Env == "development"
	appLogger.Info("Authorized on Telegram", zap.String("username", bot.Self.UserName))

	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start a new quiz"},
		tgbotapi.BotCommand{Command: "quiz", Description: "Start a new quiz"},
		tgbotapi.BotCommand{Command: "help", Description: "How to play"},
	)
	if _, err := bot.Request(commands); err != nil {
		appLogger.Warn("Failed to register bot commands", zap.Error(err))
	}

	h := telegram.NewHandler(bot, services.Quiz, services.Pronunciation, services.Cache, cfg.Quiz.SessionTTL)
	err = h.Start(ctx)
	bot.StopReceivingUpdates()
	if err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Bot stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Bot exited gracefully")
}
