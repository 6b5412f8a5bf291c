package di

import (
	"context"
	"log/slog"

	"github.com/VictoriaMetrics/metrics"
	"github.com/go-telegram/bot"
	"github.com/redis/go-redis/v9"
	feedService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/feed/service"
	filterRepo "github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/repository"
	filterService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/service"
	forwardService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/forward/service"
	messageRepo "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/repository"
	messageService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/service"
	routeRepo "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/repository"
	routeService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/service"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/config"
	httpServer "github.com/reshetovitsme/telegram-forward-filter/internal/transport/http"
	telegramHandler "github.com/reshetovitsme/telegram-forward-filter/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
	flag "github.com/spf13/pflag"
)

// Setup initializes the dependency injection container
func Setup(flags *flag.FlagSet) (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load(flags)
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Metrics
	do.ProvideValue(injector, metrics.NewSet())

	// Register Filter Repository for the configured store
	do.Provide(injector, func(i do.Injector) (filterRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return newFilterRepository(cfg)
	})

	// Register Route Repository
	do.Provide(injector, func(i do.Injector) (routeRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := routeRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize route repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Message Repository
	do.Provide(injector, func(i do.Injector) (messageRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := messageRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize message repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Filter Service
	do.Provide(injector, func(i do.Injector) (*filterService.Service, error) {
		repo := do.MustInvoke[filterRepo.Repository](i)
		return filterService.New(repo), nil
	})

	// Register Forward Service
	do.Provide(injector, func(i do.Injector) (*forwardService.Service, error) {
		filters := do.MustInvoke[*filterService.Service](i)
		set := do.MustInvoke[*metrics.Set](i)
		return forwardService.New(filters, set), nil
	})

	// Register Message Service
	do.Provide(injector, func(i do.Injector) (*messageService.Service, error) {
		repo := do.MustInvoke[messageRepo.Repository](i)
		return messageService.New(repo), nil
	})

	// Register Route Service
	do.Provide(injector, func(i do.Injector) (*routeService.Service, error) {
		repo := do.MustInvoke[routeRepo.Repository](i)
		svc := routeService.New(repo)
		if err := svc.Start(); err != nil {
			return nil, err
		}
		return svc, nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		routes := do.MustInvoke[*routeService.Service](i)
		messages := do.MustInvoke[*messageService.Service](i)
		return feedService.New(routes, messages), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		routes := do.MustInvoke[*routeService.Service](i)
		filters := do.MustInvoke[*filterService.Service](i)
		forward := do.MustInvoke[*forwardService.Service](i)
		messages := do.MustInvoke[*messageService.Service](i)
		return telegramHandler.New(cfg, routes, filters, forward, messages), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		feeds := do.MustInvoke[*feedService.Service](i)
		set := do.MustInvoke[*metrics.Set](i)
		server := httpServer.New(cfg, feeds, set)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Bot (needs to be initialized after handlers are ready)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegramHandler.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(handler.HandleUpdate),
			bot.WithServerURL(cfg.TelegramAPIURL),
			bot.WithAllowedUpdates(bot.AllowedUpdates{
				"message",
				"channel_post",
			}),
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		// Register bot commands
		handler.RegisterCommands(b)

		return b, nil
	})

	return injector, nil
}

func newFilterRepository(cfg *config.Config) (filterRepo.Repository, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverSqlite, config.StoreDriverMysql:
		db, err := filterRepo.OpenDatabase(cfg.Store.Driver.String(), cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		return filterRepo.NewGormStorage(db)
	case config.StoreDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Address,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, oops.With("address", cfg.Store.Redis.Address, "context", "failed to reach redis").Wrap(err)
		}
		slog.Info("Opened Redis filter store", "address", cfg.Store.Redis.Address, "db", cfg.Store.Redis.DB)
		return filterRepo.NewRedisStorage(client), nil
	}

	repo, err := filterRepo.NewFileStorage(cfg.StoragePath)
	if err != nil {
		return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize filter repository").Wrap(err)
	}
	return repo, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx := context.Background()

	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Failed to stop HTTP server", "error", err)
		}
	}

	// Shutdown bot if it exists
	if b, err := do.Invoke[*bot.Bot](injector); err == nil && b != nil {
		b.Close(ctx)
	}

	return nil
}
