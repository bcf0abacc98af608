package routes

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BearBump/RouteBox/internal/models"
)

// memRepo is an in-memory Repository. InTx restores the previous state when fn fails.
type memRepo struct {
	mu       sync.Mutex
	routes   map[string]*models.Route
	drivers  map[string]*models.Driver
	vehicles map[string]*models.Vehicle
	history  []*models.RouteHistory
}

func newMemRepo() *memRepo {
	return &memRepo{
		routes:   map[string]*models.Route{},
		drivers:  map[string]*models.Driver{},
		vehicles: map[string]*models.Vehicle{},
	}
}

func (m *memRepo) addDriver(d *models.Driver)   { m.drivers[d.ID] = d }
func (m *memRepo) addVehicle(v *models.Vehicle) { m.vehicles[v.ID] = v }

func (m *memRepo) historyFor(routeID string) []*models.RouteHistory {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.RouteHistory
	for _, h := range m.history {
		if h.RouteID == routeID {
			out = append(out, h)
		}
	}
	return out
}

func (m *memRepo) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	routes := make(map[string]*models.Route, len(m.routes))
	for k, v := range m.routes {
		routes[k] = copyRoute(v)
	}
	history := append([]*models.RouteHistory(nil), m.history...)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.routes, m.history = routes, history
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memRepo) GetDriver(_ context.Context, id string) (*models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drivers[id]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (m *memRepo) GetVehicle(_ context.Context, id string) (*models.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, nil
	}
	c := *v
	return &c, nil
}

func (m *memRepo) findActive(match func(r *models.Route) bool, exclude string) *models.Route {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.routes {
		if r.DeletedAt == nil && r.ID != exclude && r.Status.IsActive() && match(r) {
			return copyRoute(r)
		}
	}
	return nil
}

func (m *memRepo) FindActiveRouteByDriver(_ context.Context, driverID, exclude string) (*models.Route, error) {
	return m.findActive(func(r *models.Route) bool { return r.DriverID == driverID }, exclude), nil
}

func (m *memRepo) FindActiveRouteByVehicle(_ context.Context, vehicleID, exclude string) (*models.Route, error) {
	return m.findActive(func(r *models.Route) bool { return r.VehicleID == vehicleID }, exclude), nil
}

func (m *memRepo) RouteCodeExists(_ context.Context, code, exclude string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.routes {
		if r.DeletedAt == nil && r.ID != exclude && r.RouteCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) GetRoute(_ context.Context, id string) (*models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.routes[id]
	if !ok || r.DeletedAt != nil {
		return nil, nil
	}
	return copyRoute(r), nil
}

func (m *memRepo) ListRoutes(_ context.Context, f models.RouteFilter) ([]*models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Route
	for _, r := range m.routes {
		if r.DeletedAt != nil {
			continue
		}
		if f.Status != nil && r.Status != *f.Status {
			continue
		}
		if f.DriverID != nil && r.DriverID != *f.DriverID {
			continue
		}
		out = append(out, copyRoute(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RouteCode < out[j].RouteCode })
	return out, nil
}

func (m *memRepo) NextRouteCodeSeq(_ context.Context, prefix string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	top := 0
	for _, r := range m.routes {
		if !strings.HasPrefix(r.RouteCode, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(r.RouteCode, prefix)); err == nil && n > top {
			top = n
		}
	}
	return top + 1, nil
}

func (m *memRepo) CreateRoute(_ context.Context, r *models.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[r.ID] = copyRoute(r)
	return nil
}

func (m *memRepo) UpdateRoute(_ context.Context, r *models.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[r.ID] = copyRoute(r)
	return nil
}

func (m *memRepo) UpdateRouteStatus(_ context.Context, r *models.Route, from models.RouteStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.routes[r.ID]
	if !ok || cur.Status != from {
		return false, nil
	}
	m.routes[r.ID] = copyRoute(r)
	return true, nil
}

func (m *memRepo) ReplaceStops(_ context.Context, routeID string, stops []*models.RouteStop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.routes[routeID]
	r.Stops = copyStops(stops)
	return nil
}

func (m *memRepo) UpdateStop(_ context.Context, stop *models.RouteStop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.routes[stop.RouteID]
	for i, st := range r.Stops {
		if st.ID == stop.ID {
			c := *stop
			r.Stops[i] = &c
		}
	}
	return nil
}

func (m *memRepo) SoftDeleteRoute(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[id].DeletedAt = &at
	return nil
}

func (m *memRepo) AppendHistory(_ context.Context, h *models.RouteHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, h)
	return nil
}

func (m *memRepo) ListHistory(_ context.Context, routeID string, limit, offset int) ([]*models.RouteHistory, error) {
	all := m.historyFor(routeID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func copyRoute(r *models.Route) *models.Route {
	c := *r
	c.Stops = copyStops(r.Stops)
	return &c
}

func copyStops(in []*models.RouteStop) []*models.RouteStop {
	out := make([]*models.RouteStop, 0, len(in))
	for _, st := range in {
		c := *st
		out = append(out, &c)
	}
	return out
}
