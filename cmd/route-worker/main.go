package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/BearBump/RouteBox/config"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.LoadEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("config parse error, %v", err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := RunRouteWorker(ctx, cfg, defaultWorkerFactories(), os.Getenv("workerSwaggerPath")); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("route-worker stopped", "error", err.Error())
		cancel()
		os.Exit(1)
	}
}
