package main

import (
	"BackgroundRemover/internal/ai"
	"BackgroundRemover/internal/app/pipeline"
	"BackgroundRemover/internal/config"
	"BackgroundRemover/internal/service/export"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// Одноразовый запуск: bgremove [флаги] <файл>. Результат кладётся в -output-dir.
func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := newLogger(cfg.DebugMode)
	if err != nil {
		panic(err)
	}
	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() { _ = logger.Sync() }()

	if len(cfg.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "usage: bgremove [flags] <image file>")
		return 2
	}
	path := cfg.Args()[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := ai.NewFromConfig(ctx, cfg, sugar)
	if err != nil {
		sugar.Errorw("Failed to create model client", "error", err)
		return 1
	}

	data, err := os.ReadFile(path)
	if err != nil {
		sugar.Errorw("Failed to read image file", "path", path, "error", err)
		return 1
	}
	// Браузер передал бы File.type; здесь определяем тип по содержимому
	declared := mimetype.Detect(data).String()

	ctrl := pipeline.New(client, cfg.RequestTimeout(), nil, sugar)
	if snap := ctrl.IngestFile(data, declared); snap.Err != nil {
		sugar.Errorw("File rejected", "path", path, "detected", declared, "error", snap.Err.Message)
		return 1
	}
	if _, ok := ctrl.StartRemoval(ctx); !ok {
		sugar.Errorw("Failed to start background removal")
		return 1
	}

	done := make(chan struct{})
	go func() {
		ctrl.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		sugar.Warnw("Interrupted, request result is discarded")
		return 130
	}

	snap := ctrl.Snapshot()
	if snap.State != pipeline.Succeeded {
		msg := ""
		kind := ""
		if snap.Err != nil {
			msg, kind = snap.Err.Message, snap.Err.Kind.String()
		}
		sugar.Errorw("Background removal failed", "kind", kind, "error", msg)
		return 1
	}

	out, err := export.NewSaver(cfg.OutputDir, sugar).Save(*snap.Result, path)
	if err != nil {
		sugar.Errorw("Failed to save result", "error", err)
		return 1
	}
	fmt.Println(out)
	return 0
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
