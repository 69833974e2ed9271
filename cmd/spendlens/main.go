package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"spendlens/internal/ai"
	"spendlens/internal/backend"
	"spendlens/internal/config"
	apphttp "spendlens/internal/http"
	applog "spendlens/internal/log"
	"spendlens/internal/parse"
	"spendlens/internal/report"
	"spendlens/internal/services"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := config.Load()

	logCfg := applog.DefaultConfig()
	logCfg.Level = applog.ParseLevel(cfg.LogLevel)
	logger := applog.New(logCfg)
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	be, err := backend.New(ctx, cfg)
	if err != nil {
		logger.Error("backend initialization failed", "backend", cfg.Backend, "error", err)
		return err
	}
	if be.Cleanup != nil {
		defer func() {
			if err := be.Cleanup(); err != nil {
				logger.Error("backend cleanup failed", "error", err)
			}
		}()
	}

	var assistant services.Assistant
	if cfg.AIEnabled() {
		var opts []ai.Option
		if cfg.AIChatModel != "" {
			opts = append(opts, ai.WithChatModel(cfg.AIChatModel))
		}
		assistant = ai.NewOpenAI(cfg.OpenAIAPIKey, opts...)
		logger.Info("ai assistant enabled")
	} else {
		logger.Info("ai assistant disabled, no api key configured")
	}

	svc := services.New(services.Config{
		Store:     be.Store,
		Parser:    parse.New(),
		Exporter:  report.NewExcelExporter(),
		Assistant: assistant,
		AITimeout: cfg.AITimeout,
	})

	srv := apphttp.NewServer(":"+strconv.Itoa(cfg.Port), svc, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", srv.Addr, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
