package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veritas-cms/veritas-cms/internal/app"
	"github.com/veritas-cms/veritas-cms/internal/auth"
	"github.com/veritas-cms/veritas-cms/internal/directory"
	"github.com/veritas-cms/veritas-cms/internal/enquiries"
	"github.com/veritas-cms/veritas-cms/internal/media"
	"github.com/veritas-cms/veritas-cms/internal/news"
	"github.com/veritas-cms/veritas-cms/internal/observability"
	"github.com/veritas-cms/veritas-cms/internal/platform/cache"
	"github.com/veritas-cms/veritas-cms/internal/posts"
	"github.com/veritas-cms/veritas-cms/internal/settings"
	"github.com/veritas-cms/veritas-cms/internal/subadmin"
	"github.com/veritas-cms/veritas-cms/internal/uploads"
	"github.com/veritas-cms/veritas-cms/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		// The settings cache and job queue degrade without Redis, the
		// API itself stays up.
		logger.Warn("redis unavailable", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AdminTokenTTL, cfg.SubAdminTokenTTL)
	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, authRepo, tokens, logger)
	authHandler := auth.NewHandler(logger, authService)
	guard := auth.Guard{Tokens: tokens, Admins: authRepo, SubAdmins: authRepo, Logger: logger}

	subAdminService := subadmin.NewService(subadmin.NewRepository(dbpool))
	subAdminHandler := subadmin.NewHandler(logger, subAdminService)

	dir := directory.NewDirectory(directory.NewRepository(dbpool))
	directoryHandler := directory.NewHandler(logger, dir)

	postsService := posts.NewService(posts.NewRepository(dbpool))
	postsHandler := posts.NewHandler(logger, postsService)

	newsService := news.NewService(news.NewRepository(dbpool))
	newsHandler := news.NewHandler(logger, newsService)

	mediaService := media.NewService(media.NewRepository(dbpool))
	mediaHandler := media.NewHandler(logger, mediaService)

	var notifier enquiries.Notifier
	var jobClient *jobs.Client
	if redisClient != nil {
		jobClient, err = jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		if err != nil {
			logger.Warn("init job client", slog.Any("error", err))
		} else {
			notifier = jobClient
			defer func() {
				if err := jobClient.Close(); err != nil {
					logger.Warn("job client close", slog.Any("error", err))
				}
			}()
		}
	}
	enquiriesService := enquiries.NewService(enquiries.NewRepository(dbpool), notifier, logger)
	enquiriesHandler := enquiries.NewHandler(logger, enquiriesService)

	settingsService := settings.NewService(settings.NewRepository(dbpool), redisClient, cfg.SettingsCacheTTL, logger)
	settingsHandler := settings.NewHandler(logger, settingsService)

	uploadsService := uploads.NewService(cfg.UploadDir, cfg.UploadMaxBytes)
	uploadsHandler := uploads.NewHandler(logger, uploadsService)

	metrics := observability.NewMetrics()

	var jobHandler *jobs.Handler
	if redisClient != nil {
		inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		jobHandler = jobs.NewHandler(inspector, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Guard:            guard,
		AuthHandler:      authHandler,
		SubAdminHandler:  subAdminHandler,
		DirectoryHandler: directoryHandler,
		PostsHandler:     postsHandler,
		NewsHandler:      newsHandler,
		MediaHandler:     mediaHandler,
		EnquiriesHandler: enquiriesHandler,
		SettingsHandler:  settingsHandler,
		UploadsHandler:   uploadsHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
		UploadDir:        cfg.UploadDir,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
