package main

import (
	"BackgroundRemover/internal/adapter/web"
	"BackgroundRemover/internal/ai"
	"BackgroundRemover/internal/app/pipeline"
	"BackgroundRemover/internal/config"
	"BackgroundRemover/internal/metrics"
	"BackgroundRemover/internal/service/export"
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// Локальный UI для удаления фона: http://SERVER_BIND_ADDR/
func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.DebugMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"ModelProvider", cfg.ModelProvider,
	)

	// Graceful shutdown on Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := ai.NewFromConfig(ctx, cfg, sugar)
	if err != nil {
		sugar.Errorw("Failed to create model client", "error", err)
		return
	}

	m := metrics.New()
	ctrl := pipeline.New(client, cfg.RequestTimeout(), m, sugar)
	srv := web.NewServer(cfg.Server, ctrl, export.NewSaver(cfg.OutputDir, sugar), m, sugar)
	if err := srv.Start(ctx); err != nil {
		sugar.Errorw("Failed to start UI server", "error", err)
		return
	}

	<-ctx.Done()
	_ = srv.Stop(context.WithoutCancel(ctx))
	sugar.Infow("server stopped")
}
