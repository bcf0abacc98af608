// Package monitor watches for active routes that ran past their planned end
// and announces them on the broker once per route.
package monitor

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BearBump/RouteBox/internal/broker/messages"
	"github.com/BearBump/RouteBox/internal/models"
	"github.com/pkg/errors"
)

const releaseTimeout = 5 * time.Second

type Repository interface {
	ClaimDelayedRoutes(ctx context.Context, now time.Time, limit int) ([]*models.Route, error)
	ReleaseDelayNotice(ctx context.Context, routeID string) error
}

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

type Monitor struct {
	repo     Repository
	producer Producer
	topic    string

	interval       time.Duration
	batchSize      int
	concurrency    int
	publishRetries int
	retryBackoff   time.Duration

	now func() time.Time

	triggerCh chan struct{}

	startedAtUnixNano   int64
	lastCycleUnixNano   atomic.Int64
	lastTriggerUnixNano atomic.Int64
	totalClaimed        atomic.Int64
	totalPublished      atomic.Int64
	totalErrors         atomic.Int64
	inFlight            atomic.Int64
	lastErrorMu         sync.Mutex
	lastError           string
}

func New(repo Repository, producer Producer, topic string) *Monitor {
	if topic == "" {
		topic = messages.TopicRouteDelayed
	}
	return &Monitor{
		repo: repo, producer: producer, topic: topic,
		interval:          time.Minute,
		batchSize:         100,
		concurrency:       4,
		publishRetries:    5,
		retryBackoff:      150 * time.Millisecond,
		now:               func() time.Time { return time.Now().UTC() },
		triggerCh:         make(chan struct{}, 1),
		startedAtUnixNano: time.Now().UTC().UnixNano(),
	}
}

func (m *Monitor) WithSettings(interval time.Duration, batchSize, concurrency int) *Monitor {
	if interval > 0 {
		m.interval = interval
	}
	if batchSize > 0 {
		m.batchSize = batchSize
	}
	if concurrency > 0 {
		m.concurrency = concurrency
	}
	return m
}

func (m *Monitor) WithRetry(retries int, backoff time.Duration) *Monitor {
	if retries > 0 {
		m.publishRetries = retries
	}
	if backoff >= 0 {
		m.retryBackoff = backoff
	}
	return m
}

func (m *Monitor) WithClock(now func() time.Time) *Monitor {
	m.now = now
	return m
}

// Trigger forces an immediate cycle. Non-blocking; extra triggers coalesce.
func (m *Monitor) Trigger() {
	m.lastTriggerUnixNano.Store(time.Now().UTC().UnixNano())
	select {
	case m.triggerCh <- struct{}{}:
	default:
	}
}

type Stats struct {
	StartedAt      time.Time  `json:"startedAt"`
	LastCycleAt    *time.Time `json:"lastCycleAt,omitempty"`
	LastTriggerAt  *time.Time `json:"lastTriggerAt,omitempty"`
	TotalClaimed   int64      `json:"totalClaimed"`
	TotalPublished int64      `json:"totalPublished"`
	TotalErrors    int64      `json:"totalErrors"`
	InFlight       int64      `json:"inFlight"`
	LastError      string     `json:"lastError,omitempty"`
}

func (m *Monitor) Stats() Stats {
	st := Stats{
		StartedAt:      time.Unix(0, m.startedAtUnixNano).UTC(),
		TotalClaimed:   m.totalClaimed.Load(),
		TotalPublished: m.totalPublished.Load(),
		TotalErrors:    m.totalErrors.Load(),
		InFlight:       m.inFlight.Load(),
	}
	if n := m.lastCycleUnixNano.Load(); n > 0 {
		t := time.Unix(0, n).UTC()
		st.LastCycleAt = &t
	}
	if n := m.lastTriggerUnixNano.Load(); n > 0 {
		t := time.Unix(0, n).UTC()
		st.LastTriggerAt = &t
	}
	m.lastErrorMu.Lock()
	st.LastError = m.lastError
	m.lastErrorMu.Unlock()
	return st
}

func (m *Monitor) Run(ctx context.Context) error {
	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			m.runOnce(ctx)
		case <-m.triggerCh:
			m.runOnce(ctx)
		}
	}
}

func (m *Monitor) setLastError(err error) {
	m.lastErrorMu.Lock()
	m.lastError = err.Error()
	m.lastErrorMu.Unlock()
}

func (m *Monitor) runOnce(ctx context.Context) {
	now := m.now()
	m.lastCycleUnixNano.Store(time.Now().UTC().UnixNano())

	routes, err := m.repo.ClaimDelayedRoutes(ctx, now, m.batchSize)
	if err != nil {
		slog.Error("claim delayed routes", "error", err.Error())
		m.totalErrors.Add(1)
		m.setLastError(err)
		return
	}
	m.totalClaimed.Add(int64(len(routes)))

	sem := make(chan struct{}, m.concurrency)
	var wg sync.WaitGroup
	for _, r := range routes {
		sem <- struct{}{}
		wg.Add(1)
		m.inFlight.Add(1)
		go func(r *models.Route) {
			defer func() {
				m.inFlight.Add(-1)
				<-sem
				wg.Done()
			}()
			if err := m.notify(ctx, r, now); err != nil {
				m.totalErrors.Add(1)
				m.setLastError(err)
				slog.Error("notify delayed route", "route_id", r.ID, "route_code", r.RouteCode, "error", err.Error())
				// let the next cycle pick it up again, even when shutting down
				if relErr := m.release(ctx, r.ID); relErr != nil {
					slog.Error("release delay notice", "route_id", r.ID, "error", relErr.Error())
				}
				return
			}
			m.totalPublished.Add(1)
		}(r)
	}
	wg.Wait()
}

func (m *Monitor) release(ctx context.Context, routeID string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	return m.repo.ReleaseDelayNotice(ctx, routeID)
}

func (m *Monitor) notify(ctx context.Context, r *models.Route, detectedAt time.Time) error {
	msg := messages.RouteDelayed{
		RouteID:        r.ID,
		RouteCode:      r.RouteCode,
		DriverID:       r.DriverID,
		VehicleID:      r.VehicleID,
		Status:         string(r.Status),
		PlannedDate:    r.PlannedDate.Format(models.DateLayout),
		PlannedEndTime: r.PlannedEndTime,
		DetectedAt:     detectedAt,
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal kafka msg")
	}

	var pubErr error
	for i := 0; i < m.publishRetries; i++ {
		if pubErr = m.producer.Publish(ctx, m.topic, []byte(r.ID), b); pubErr == nil {
			slog.Info("route delayed", "route_id", r.ID, "route_code", r.RouteCode, "driver_id", r.DriverID)
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "publish route delayed")
		case <-time.After(time.Duration(i+1) * m.retryBackoff):
		}
	}
	return errors.Wrap(pubErr, "publish route delayed")
}
