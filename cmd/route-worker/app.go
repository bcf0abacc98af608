package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/BearBump/RouteBox/config"
	"github.com/BearBump/RouteBox/internal/broker/kafka"
	"github.com/BearBump/RouteBox/internal/broker/messages"
	"github.com/BearBump/RouteBox/internal/services/monitor"
	"github.com/BearBump/RouteBox/internal/storage/pgroute"
)

type workerFactories struct {
	newStorage  func(cfg *config.Config) (repo monitor.Repository, closeFn func(), err error)
	newProducer func(cfg *config.Config) monitor.Producer
}

func defaultWorkerFactories() workerFactories {
	return workerFactories{
		newStorage: func(cfg *config.Config) (monitor.Repository, func(), error) {
			st, err := pgroute.New(cfg.Database.ConnString())
			if err != nil {
				return nil, nil, err
			}
			return st, st.Close, nil
		},
		newProducer: func(cfg *config.Config) monitor.Producer {
			return kafka.NewProducer(cfg.Kafka.Brokers())
		},
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// RunRouteWorker runs the delay monitor and, when swaggerPath is set, the
// worker's operational HTTP server until ctx is done.
func RunRouteWorker(ctx context.Context, cfg *config.Config, f workerFactories, swaggerPath string) error {
	topic := cfg.Kafka.RouteDelayedTopicName
	if topic == "" {
		topic = messages.TopicRouteDelayed
	}

	interval := time.Duration(cfg.RouteBox.MonitorIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	batchSize := cfg.RouteBox.MonitorBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	concurrency := cfg.RouteBox.MonitorConcurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	backoff := time.Duration(cfg.RouteBox.MonitorRetryBackoffMs) * time.Millisecond
	if backoff <= 0 {
		backoff = 150 * time.Millisecond
	}

	repo, closeFn, err := f.newStorage(cfg)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	producer := f.newProducer(cfg)
	if c, ok := producer.(interface{ Close() error }); ok {
		defer func() { _ = c.Close() }()
	}

	m := monitor.New(repo, producer, topic).
		WithSettings(interval, batchSize, concurrency).
		WithRetry(cfg.RouteBox.MonitorPublishRetries, backoff)

	if swaggerPath != "" {
		opts := workerHTTPOpts{
			httpAddr:    cfg.RouteBox.WorkerHTTPAddr,
			swaggerPath: swaggerPath,
			monitor:     m,
			cfg:         cfg,
		}
		if p, ok := repo.(pinger); ok {
			opts.ready = p.Ping
		}
		go func() {
			if err := runWorkerHTTPServer(ctx, opts); err != nil {
				slog.Error("worker http server stopped", "error", err.Error())
			}
		}()
	}

	slog.Info("delay monitor started",
		"topic", topic,
		"interval", interval.String(),
		"batch", batchSize,
		"concurrency", concurrency,
	)
	return m.Run(ctx)
}
