package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/RouteBox/config"
	routesapi "github.com/BearBump/RouteBox/internal/api/routes_api"
	"github.com/BearBump/RouteBox/internal/broker/kafka"
	"github.com/BearBump/RouteBox/internal/broker/messages"
	"github.com/BearBump/RouteBox/internal/cache"
	"github.com/BearBump/RouteBox/internal/cache/rediscache"
	"github.com/BearBump/RouteBox/internal/integrations/geocoder"
	geofake "github.com/BearBump/RouteBox/internal/integrations/geocoder/fake"
	"github.com/BearBump/RouteBox/internal/integrations/geocoder/nominatim"
	"github.com/BearBump/RouteBox/internal/services/fleet"
	"github.com/BearBump/RouteBox/internal/services/routes"
	"github.com/BearBump/RouteBox/internal/storage/pgroute"
)

type routeAPIApp struct {
	ctx      context.Context
	cancel   context.CancelFunc
	opts     routeAPIOpts
	api      *routesapi.API
	svc      *routes.Service
	consumer *kafka.Consumer
	producer *kafka.Producer
	cache    *rediscache.RedisCache
	closeDB  func()
}

func mustBootstrapRouteAPI() *routeAPIApp {
	if err := config.LoadEnv(); err != nil {
		panic(err)
	}
	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}
	swaggerPath := os.Getenv("swaggerPath")
	if swaggerPath == "" {
		panic("swaggerPath env var is required")
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("config parse error, %v", err))
	}

	httpAddr := cfg.RouteBox.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	consumerGroup := cfg.RouteBox.KafkaConsumerGroup
	if consumerGroup == "" {
		consumerGroup = "route-api"
	}
	stopTopic := cfg.Kafka.StopUpdatesTopicName
	if stopTopic == "" {
		stopTopic = messages.TopicStopUpdates
	}
	eventsTopic := cfg.Kafka.RouteEventsTopicName
	if eventsTopic == "" {
		eventsTopic = messages.TopicRouteEvents
	}
	cacheTTL := time.Duration(cfg.RouteBox.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	rlPerMin := int64(cfg.RouteBox.RateLimitPerMinute)
	if rlPerMin <= 0 {
		rlPerMin = 300
	}

	st := mustOpenPostgresWithRetry(cfg.Database.ConnString(), 60*time.Second)

	rc := rediscache.NewWithOptions(rediscache.Options{
		Addr:      cfg.Redis.Addr(),
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		KeyPrefix: cfg.Redis.KeyPrefix,
	})

	producer := kafka.NewProducer(cfg.Kafka.Brokers())

	svc := routes.New(st).
		WithCache(rc, cacheTTL).
		WithHook(routes.NewEventHook(producer, eventsTopic))
	if g := newGeocoder(cfg.Geocoder, rc); g != nil {
		svc = svc.WithGeocoder(g)
	}

	fleetSvc := fleet.New(st)
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers(), stopTopic, consumerGroup)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return &routeAPIApp{
		ctx:    ctx,
		cancel: cancel,
		opts: routeAPIOpts{
			httpAddr:      httpAddr,
			topic:         stopTopic,
			consumerGroup: consumerGroup,
			api: routesapi.Options{
				SwaggerPath:        swaggerPath,
				CORSOrigins:        cfg.RouteBox.CORSOrigins,
				RateLimiter:        rediscache.NewRateLimiterFromClient(rc.Client()),
				RateLimitPerMinute: rlPerMin,
				Ready: func(ctx context.Context) error {
					if err := st.Ping(ctx); err != nil {
						return err
					}
					return rc.Ping(ctx)
				},
			},
		},
		api:      routesapi.New(svc, fleetSvc),
		svc:      svc,
		consumer: consumer,
		producer: producer,
		cache:    rc,
		closeDB:  st.Close,
	}
}

// newGeocoder returns nil when geocoding is disabled.
func newGeocoder(cfg config.GeocoderConfig, c cache.BytesCache) routes.Geocoder {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	switch cfg.Mode {
	case "nominatim":
		if cfg.BaseURL == "" {
			return nil
		}
		client := nominatim.New(cfg.BaseURL, cfg.UserAgent)
		if cfg.Country != "" {
			client = client.WithCountry(cfg.Country)
		}
		return geocoder.NewCached(client, c, ttl)
	case "fake":
		return geofake.New()
	default:
		return nil
	}
}

func mustOpenPostgresWithRetry(connString string, wait time.Duration) *pgroute.Storage {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgroute.New(connString)
		if err == nil {
			return st
		}
		lastErr = err
		time.Sleep(1 * time.Second)
	}
	panic(fmt.Sprintf("postgres is not ready after %s: %v", wait, lastErr))
}

func (a *routeAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.consumer != nil {
		_ = a.consumer.Close()
	}
	if a.producer != nil {
		_ = a.producer.Close()
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.closeDB != nil {
		a.closeDB()
	}
}

func (a *routeAPIApp) Run() error {
	return runRouteAPI(a.ctx, a.opts, a.api, a.svc, a.consumer)
}
