package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bouncerbot/bouncer/bot"
	"github.com/bouncerbot/bouncer/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	b, err := bot.New(cfg, logger)
	if err != nil {
		logger.Error("failed to build bot", "err", err)
		os.Exit(1)
	}

	if err := b.Start(context.Background()); err != nil {
		logger.Error("failed to start bot", "err", err)
		os.Exit(1)
	}

	logger.Info("bot is running", "prefix", cfg.Prefix)

	b.Wait()

	if err := b.Close(); err != nil {
		logger.Error("shutdown error", "err", err)
		os.Exit(1)
	}
}
