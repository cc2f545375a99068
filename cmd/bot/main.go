package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gustavomchagas/chuta/internal/bolao/app"
	"github.com/gustavomchagas/chuta/internal/bolao/telegram"
	"github.com/gustavomchagas/chuta/internal/pkg/config"
	"github.com/gustavomchagas/chuta/internal/pkg/health"
	"github.com/gustavomchagas/chuta/internal/pkg/logging"
)

const (
	defaultConfigPath = "configs/example.yaml"
	serviceName       = "chuta-bot"
)

func main() {
	fmt.Println("Starting Chutaí bot...")

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	var configPath string
	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.Parse()

	fmt.Printf("Loading config from: %s\n", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := logging.SetupLogger(&cfg.Logging, serviceName)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("Error closing storage", "error", err)
		}
	}()

	router := health.NewRouter(health.Deps{
		Checker: a.Store.Ping,
		Metrics: a.Metrics.Handler(),
		Window:  a.Intake,
	})
	if err := health.Run(ctx, cfg.Health, serviceName, router); err != nil {
		return err
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = false
	logger.Info("Authorized on account", "username", api.Self.UserName)

	notifier := telegram.NewNotifier(api, cfg.Telegram.SendInterval, logger)
	defer notifier.Stop()

	bot := telegram.NewBot(api, a.Intake, notifier, telegram.NewSession(cfg.Telegram.GroupID), cfg.Telegram, logger)
	return bot.Run(ctx)
}
