package routes

import (
	"context"
	"time"

	"github.com/BearBump/RouteBox/internal/models"
)

// Lookup is the read side the Validator needs. Getters return (nil, nil)
// when the record does not exist or is soft-deleted.
type Lookup interface {
	GetDriver(ctx context.Context, id string) (*models.Driver, error)
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	FindActiveRouteByDriver(ctx context.Context, driverID, excludeRouteID string) (*models.Route, error)
	FindActiveRouteByVehicle(ctx context.Context, vehicleID, excludeRouteID string) (*models.Route, error)
	RouteCodeExists(ctx context.Context, code, excludeRouteID string) (bool, error)
}

type Repository interface {
	Lookup

	// InTx runs fn in one serializable transaction. Repository calls made
	// with the ctx handed to fn join that transaction.
	InTx(ctx context.Context, fn func(ctx context.Context) error) error

	GetRoute(ctx context.Context, id string) (*models.Route, error)
	ListRoutes(ctx context.Context, f models.RouteFilter) ([]*models.Route, error)
	NextRouteCodeSeq(ctx context.Context, prefix string) (int, error)

	CreateRoute(ctx context.Context, r *models.Route) error
	UpdateRoute(ctx context.Context, r *models.Route) error
	// UpdateRouteStatus persists status fields only if the stored status is still from.
	UpdateRouteStatus(ctx context.Context, r *models.Route, from models.RouteStatus) (bool, error)
	ReplaceStops(ctx context.Context, routeID string, stops []*models.RouteStop) error
	UpdateStop(ctx context.Context, stop *models.RouteStop) error
	SoftDeleteRoute(ctx context.Context, id string, at time.Time) error

	AppendHistory(ctx context.Context, h *models.RouteHistory) error
	ListHistory(ctx context.Context, routeID string, limit, offset int) ([]*models.RouteHistory, error)
}
