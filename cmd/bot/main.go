package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/gatekeeper/internal/captcha"
	"github.com/set-night/gatekeeper/internal/config"
	"github.com/set-night/gatekeeper/internal/handler"
	"github.com/set-night/gatekeeper/internal/middleware"
	"github.com/set-night/gatekeeper/internal/telegram"
	"github.com/set-night/gatekeeper/internal/verification"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize captcha generation
	renderer, err := captcha.NewImageRenderer()
	if err != nil {
		slog.Error("failed to initialize captcha renderer", "error", err)
		os.Exit(1)
	}
	generator := captcha.NewGenerator(renderer)

	// Challenge registry (in-memory, lost on restart)
	store := verification.NewStore()

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	httpClient, err := cfg.HTTPClient()
	if err != nil {
		slog.Error("failed to build http client", "error", err)
		os.Exit(1)
	}

	opts := []bot.Option{
		bot.WithHTTPClient(config.APICallTimeout, httpClient),
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil {
				return
			}
			// Join events carry no text and reach no registered handler
			if update.Message != nil && len(update.Message.NewChatMembers) > 0 {
				h.HandleNewMembers(ctx, b, update)
			}
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	if !strings.EqualFold(me.Username, cfg.BotName) {
		slog.Warn("configured BOT_NAME does not match the token's account",
			"configured", cfg.BotName, "actual", me.Username)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Initialize handler
	h = handler.New(handler.Deps{
		Cfg:       cfg,
		Transport: telegram.NewClient(b),
		Generator: generator,
		Store:     store,
		Notifier:  telegram.NewNotifier(b, cfg.LogChatID),
		BotID:     me.ID,
		BotName:   cfg.BotName,
	})

	// Register all handlers
	h.Register(b)

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID, "challenge_ttl", cfg.ChallengeTTL)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully", "pending_challenges", store.Len())
}
