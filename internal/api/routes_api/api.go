// Package routes_api exposes the route and fleet services over REST.
package routes_api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/BearBump/RouteBox/internal/audit"
	"github.com/BearBump/RouteBox/internal/geo"
	"github.com/BearBump/RouteBox/internal/models"
	"github.com/BearBump/RouteBox/internal/services/routes"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouteService interface {
	Create(ctx context.Context, in models.RouteCreateInput, actor audit.Actor) (*models.Route, error)
	Update(ctx context.Context, id string, in models.RouteUpdateInput, actor audit.Actor) (*models.Route, error)
	Remove(ctx context.Context, id string, actor audit.Actor) error
	GetView(ctx context.Context, id string) (*routes.RouteView, error)
	List(ctx context.Context, f models.RouteFilter) ([]*models.Route, error)
	ListHistory(ctx context.Context, routeID string, limit, offset int) ([]*models.RouteHistory, error)

	Start(ctx context.Context, id string, actor audit.Actor) (*models.Route, error)
	Pause(ctx context.Context, id, reason string, actor audit.Actor) (*models.Route, error)
	Resume(ctx context.Context, id string, actor audit.Actor) (*models.Route, error)
	Complete(ctx context.Context, id string, actualDistanceKm *float64, actor audit.Actor) (*models.Route, error)
	Cancel(ctx context.Context, id, reason string, actor audit.Actor) (*models.Route, error)
	ApplyStopUpdate(ctx context.Context, in models.StopUpdateInput, actor audit.Actor) (*models.RouteStop, error)

	Estimate(t models.RouteType, points []string) (geo.Estimate, error)
}

type FleetService interface {
	RegisterDriver(ctx context.Context, in models.DriverCreateInput) (*models.Driver, error)
	GetDriver(ctx context.Context, id string) (*models.Driver, error)
	ListDrivers(ctx context.Context, limit, offset int) ([]*models.Driver, error)
	DeactivateDriver(ctx context.Context, id string) (*models.Driver, error)

	RegisterVehicle(ctx context.Context, in models.VehicleCreateInput) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, limit, offset int) ([]*models.Vehicle, error)
	ChangeVehicleStatus(ctx context.Context, id, status string) (*models.Vehicle, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

type Options struct {
	SwaggerPath string
	CORSOrigins []string

	RateLimiter        RateLimiter
	RateLimitPerMinute int64

	// Ready backs /readyz; nil means always ready.
	Ready func(ctx context.Context) error
}

type API struct {
	routes RouteService
	fleet  FleetService
}

func New(routes RouteService, fleet FleetService) *API {
	return &API{routes: routes, fleet: fleet}
}

func (a *API) Router(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", headerUserID, headerUserName, headerUserType, middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := opts.Ready(ctx); err != nil {
				writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
				return
			}
		}
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
	})

	if opts.SwaggerPath != "" {
		r.Get("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			http.ServeFile(w, r, opts.SwaggerPath)
		})
		swaggerURL := "/swagger.json"
		if fi, err := os.Stat(opts.SwaggerPath); err == nil {
			swaggerURL = fmt.Sprintf("/swagger.json?v=%d", fi.ModTime().Unix())
		}
		r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if opts.RateLimiter != nil && opts.RateLimitPerMinute > 0 {
			r.Use(rateLimitMiddleware(opts.RateLimiter, opts.RateLimitPerMinute))
		}

		r.Route("/drivers", func(r chi.Router) {
			r.Post("/", a.createDriver)
			r.Get("/", a.listDrivers)
			r.Get("/{id}", a.getDriver)
			r.Post("/{id}/deactivate", a.deactivateDriver)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Post("/", a.createVehicle)
			r.Get("/", a.listVehicles)
			r.Get("/{id}", a.getVehicle)
			r.Patch("/{id}/status", a.changeVehicleStatus)
		})

		r.Route("/routes", func(r chi.Router) {
			r.Post("/", a.createRoute)
			r.Get("/", a.listRoutes)
			r.Post("/estimate", a.estimate)
			r.Get("/{id}", a.getRoute)
			r.Patch("/{id}", a.updateRoute)
			r.Delete("/{id}", a.removeRoute)
			r.Get("/{id}/history", a.listHistory)
			r.Post("/{id}/start", a.startRoute)
			r.Post("/{id}/pause", a.pauseRoute)
			r.Post("/{id}/resume", a.resumeRoute)
			r.Post("/{id}/complete", a.completeRoute)
			r.Post("/{id}/cancel", a.cancelRoute)
			r.Patch("/{id}/stops/{stopId}", a.updateStop)
		})
	})

	return r
}
