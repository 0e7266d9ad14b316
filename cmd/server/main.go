// @title Meter Service API
// @version 1.0
// @description Electricity meter readings import and discount plan cost comparison.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	"github.com/wattplan/meter-service/config"
	_ "github.com/wattplan/meter-service/docs"
	"github.com/wattplan/meter-service/internal/analysis"
	"github.com/wattplan/meter-service/internal/app"
	"github.com/wattplan/meter-service/internal/handlers"
	"github.com/wattplan/meter-service/internal/metrics"
	"github.com/wattplan/meter-service/internal/middleware"
	"github.com/wattplan/meter-service/internal/session"
	"github.com/wattplan/meter-service/internal/storage"
	"github.com/wattplan/meter-service/internal/sweepers"
	"github.com/wattplan/meter-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load(os.Getenv("METER_SERVICE_CONFIG"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting meter service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize telemetry")
	}

	parseOpts, err := app.ParseOptions(cfg.Readings)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid readings configuration")
	}

	recorder := metrics.NewRecorder()
	registry := session.NewRegistry(session.Options{
		MaxSessions: cfg.Sessions.MaxSessions,
		AutoCreate:  cfg.Sessions.AutoCreate,
	}, logger, recorder)

	baseline, err := app.LoadBundled(cfg.Readings, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Readings.BundledPath).Msg("Failed to load bundled readings")
	}
	registry.SetBaseline(baseline)

	var archiver *storage.Archiver
	if cfg.Storage.Enabled {
		store, err := storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize upload storage")
		}
		archiver = storage.NewArchiver(store, logger)
		logger.Info().Str("path", cfg.Storage.BasePath).Msg("Upload archiving enabled")
	}

	h := handlers.New(handlers.Deps{
		Sessions:       registry,
		Reports:        analysis.NewService(cfg.Pricing.DefaultPrice, logger, recorder),
		Archiver:       archiver,
		ParseOptions:   parseOpts,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Metrics:        recorder,
		Logger:         logger,
	})

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	api.Use(middleware.APIKeyMiddleware(cfg.Server.APIKey))
	api.Use(middleware.RateLimitMiddleware(limiter))
	h.RegisterRoutes(api)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sweeper := sweepers.NewSessionSweeper(registry, logger, cfg.Sessions.TTL, cfg.Sessions.SweepInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		sweeper.Start(gctx)
		return nil
	})
	g.Go(func() error {
		limiter.Run(gctx, time.Minute)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down server...")
		sweeper.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Server forced to shutdown")
		}
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Telemetry shutdown failed")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped with error")
	}
	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "meter-service").Logger()
	return &logger
}
