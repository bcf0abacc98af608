package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	routesapi "github.com/BearBump/RouteBox/internal/api/routes_api"
	"github.com/BearBump/RouteBox/internal/audit"
	"github.com/BearBump/RouteBox/internal/broker/kafka"
	"github.com/BearBump/RouteBox/internal/broker/messages"
	"github.com/BearBump/RouteBox/internal/models"
	"github.com/pkg/errors"
)

// Device reports race REST edits on the same route; serialization failures
// are retried before the consumer gives up.
const (
	stopUpdateAttempts = 5
	stopUpdateBackoff  = 100 * time.Millisecond
)

type routeAPIOpts struct {
	httpAddr string

	topic         string
	consumerGroup string

	api routesapi.Options

	onListen func(httpAddr string)
}

type kafkaConsumer interface {
	Consume(ctx context.Context, handler kafka.Handler) error
}

type stopUpdater interface {
	ApplyStopUpdate(ctx context.Context, in models.StopUpdateInput, actor audit.Actor) (*models.RouteStop, error)
}

func runRouteAPI(ctx context.Context, opts routeAPIOpts, api *routesapi.API, stops stopUpdater, consumer kafkaConsumer) error {
	if opts.api.SwaggerPath == "" {
		return fmt.Errorf("swaggerPath env var is required")
	}
	if _, err := os.Stat(opts.api.SwaggerPath); os.IsNotExist(err) {
		return fmt.Errorf("swagger file not found: %s", opts.api.SwaggerPath)
	}

	lis, err := net.Listen("tcp", opts.httpAddr)
	if err != nil {
		return err
	}
	if opts.onListen != nil {
		opts.onListen(lis.Addr().String())
	}

	httpErr := make(chan error, 1)
	go func() {
		httpErr <- runHTTPServer(ctx, lis, api.Router(opts.api))
	}()

	consumerErr := make(chan error, 1)
	go func() {
		slog.Info("kafka consumer started", "topic", opts.topic, "group", opts.consumerGroup)
		err := consumer.Consume(ctx, stopUpdateHandler(stops, stopUpdateAttempts, stopUpdateBackoff))
		if ctx.Err() != nil {
			return
		}
		consumerErr <- errors.Wrap(err, "stop updates consumer")
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-httpErr:
		return err
	case err := <-consumerErr:
		return err
	}
}

func runHTTPServer(ctx context.Context, lis net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("HTTP server listening", "addr", lis.Addr().String())
	err := srv.Serve(lis)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// stopUpdateHandler applies device reports. Messages that can never succeed
// are logged and committed. Conflicts are retried with a growing backoff, and
// whatever still fails is left uncommitted for redelivery.
func stopUpdateHandler(svc stopUpdater, attempts int, backoff time.Duration) kafka.Handler {
	if attempts < 1 {
		attempts = 1
	}
	return func(ctx context.Context, key, value []byte) error {
		var m messages.StopUpdated
		if err := json.Unmarshal(value, &m); err != nil {
			slog.Warn("skip malformed stop update", "key", string(key), "error", err.Error())
			return nil
		}

		reportedAt := m.ReportedAt
		if reportedAt.IsZero() {
			reportedAt = time.Now().UTC()
		}
		in := models.StopUpdateInput{
			RouteID:             m.RouteID,
			StopID:              m.StopID,
			Status:              m.Status,
			ActualArrivalTime:   m.ActualArrivalTime,
			ActualDepartureTime: m.ActualDepartureTime,
			Notes:               m.Notes,
			ReportedAt:          reportedAt,
		}
		actor := deviceActor(m, key)

		var err error
		for i := 0; i < attempts; i++ {
			_, err = svc.ApplyStopUpdate(ctx, in, actor)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrBadRequest):
				slog.Warn("stop update rejected",
					"route_id", m.RouteID,
					"stop_id", m.StopID,
					"status", m.Status,
					"error", err.Error(),
				)
				return nil
			case !errors.Is(err, models.ErrConflict):
				return err
			}
			if i == attempts-1 {
				break
			}
			slog.Warn("stop update conflict, retrying", "route_id", m.RouteID, "stop_id", m.StopID, "attempt", i+1)
			select {
			case <-ctx.Done():
				return errors.Wrap(ctx.Err(), "apply stop update")
			case <-time.After(time.Duration(i+1) * backoff):
			}
		}
		return errors.Wrapf(err, "apply stop update after %d attempts", attempts)
	}
}

func deviceActor(m messages.StopUpdated, key []byte) audit.Actor {
	a := audit.System("kafka:" + string(key))
	a.UserType = audit.UserTypeDevice
	if m.DeviceID != "" {
		a.UserID = m.DeviceID
		a.UserName = "device " + m.DeviceID
	}
	return a
}
