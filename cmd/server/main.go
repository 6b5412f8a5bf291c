package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/reshetovitsme/telegram-forward-filter/internal/di"
	routeService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/service"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/config"
	httpServer "github.com/reshetovitsme/telegram-forward-filter/internal/transport/http"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
)

func main() {
	// Setup structured logging with multiple handlers using slog-multi
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	// Use Fanout to send logs to both handlers
	multiHandler := slogmulti.Fanout(textHandler, jsonHandler)
	logger := slog.New(multiHandler)
	slog.SetDefault(logger)

	flags := config.NewFlagSet()
	if err := flags.Parse(os.Args[1:]); err != nil {
		slog.Error("Failed to parse flags", "error", err)
		os.Exit(2)
	}

	// Setup dependency injection
	injector, err := di.Setup(flags)
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	routes, err := do.Invoke[*routeService.Service](injector)
	if err != nil {
		slog.Error("Failed to load routes", "error", err)
		os.Exit(1)
	}
	server := do.MustInvoke[*httpServer.Server](injector)
	b, err := do.Invoke[*bot.Bot](injector)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start HTTP server
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("Failed to start HTTP server", "error", err)
			cancel()
		}
	}()

	// Long polling stops when ctx is cancelled
	go b.Start(ctx)

	all, err := routes.GetAllRoutes()
	if err != nil {
		slog.Error("Failed to list routes", "error", err)
	}
	slog.Info("Application started", "port", cfg.HTTPPort, "store", cfg.Store.Driver, "routes", len(all))
	slog.Info("Press Ctrl+C to stop")

	<-ctx.Done()
	slog.Info("Shutting down...")
}
