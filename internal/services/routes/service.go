package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/BearBump/RouteBox/internal/audit"
	"github.com/BearBump/RouteBox/internal/cache"
	"github.com/BearBump/RouteBox/internal/geo"
	"github.com/BearBump/RouteBox/internal/models"
	"github.com/BearBump/RouteBox/internal/validators"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrInvalidTransition = errors.Wrap(models.ErrBadRequest, "invalid status transition")

const (
	defaultListLimit = 50
	maxListLimit     = 500
	maxRouteCodeSeq  = 999
)

// Geocoder resolves a free-form address into a "POINT(lat lng)" string.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (string, error)
}

type Service struct {
	repo      Repository
	validator *Validator
	differ    *audit.Differ
	geocoder  Geocoder
	cache     cache.BytesCache
	cacheTTL  time.Duration
	hooks     []Hook
	now       func() time.Time
}

func New(repo Repository) *Service {
	s := &Service{
		repo:   repo,
		differ: audit.NewDiffer(DefaultDiffConfig),
		now:    time.Now,
	}
	s.validator = NewValidator(repo, s.clock)
	return s
}

func (s *Service) WithCache(c cache.BytesCache, ttl time.Duration) *Service {
	s.cache = c
	s.cacheTTL = ttl
	return s
}

func (s *Service) WithGeocoder(g Geocoder) *Service {
	s.geocoder = g
	return s
}

func (s *Service) WithHook(h Hook) *Service {
	s.hooks = append(s.hooks, h)
	return s
}

func (s *Service) WithDiffConfig(cfg audit.DiffConfig) *Service {
	s.differ = audit.NewDiffer(cfg)
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) clock() time.Time { return s.now() }

func (s *Service) Create(ctx context.Context, in models.RouteCreateInput, actor audit.Actor) (*models.Route, error) {
	if err := normalizeCreate(&in); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateRouteDates(in.PlannedDate, in.PlannedStartTime, in.PlannedEndTime); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	r := &models.Route{
		ID:                     uuid.NewString(),
		Name:                   in.Name,
		Description:            in.Description,
		DriverID:               in.DriverID,
		VehicleID:              in.VehicleID,
		Status:                 models.RouteStatusPlanned,
		Type:                   in.Type,
		PlannedDate:            dateOnly(in.PlannedDate),
		PlannedStartTime:       in.PlannedStartTime,
		PlannedEndTime:         in.PlannedEndTime,
		OriginAddress:          in.OriginAddress,
		OriginCoordinates:      in.OriginCoordinates,
		DestinationAddress:     in.DestinationAddress,
		DestinationCoordinates: in.DestinationCoordinates,
		TotalLoadKg:            in.TotalLoadKg,
		TotalVolumeM3:          in.TotalVolumeM3,
		Notes:                  in.Notes,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if in.RouteCode != nil {
		r.RouteCode = *in.RouteCode
	}
	r.Stops = buildStops(r.ID, in.Stops, now)

	s.geocodeRoute(ctx, r)
	s.estimate(r, in.EstimatedDistanceKm, in.EstimatedDurationMinutes)

	var m Mutation
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.validator.ValidateDriverExists(ctx, r.DriverID); err != nil {
			return err
		}
		if _, err := s.validator.ValidateVehicleExists(ctx, r.VehicleID); err != nil {
			return err
		}
		if r.RouteCode == "" {
			code, err := s.nextRouteCode(ctx, r.PlannedDate)
			if err != nil {
				return err
			}
			r.RouteCode = code
		} else if err := s.validator.ValidateUniqueRouteCode(ctx, r.RouteCode, ""); err != nil {
			return err
		}
		if err := s.validator.ValidateDriverAssignment(ctx, r.DriverID, r.PlannedDate, ""); err != nil {
			return err
		}
		if err := s.validator.ValidateVehicleAssignment(ctx, r.VehicleID, r.PlannedDate, ""); err != nil {
			return err
		}
		if err := s.validator.ValidateRouteCapacity(ctx, r.VehicleID, r.TotalLoadKg, r.TotalVolumeM3); err != nil {
			return err
		}

		h := s.newHistory(r, models.HistoryRouteCreated, actor, now)
		h.Description = fmt.Sprintf("Route %s created", r.RouteCode)
		h.NewStatus = statusPtr(r.Status)
		m = Mutation{Event: models.HistoryRouteCreated, Route: r, History: h, Actor: actor}

		if err := s.beforeSave(ctx, m); err != nil {
			return err
		}
		if err := s.repo.CreateRoute(ctx, r); err != nil {
			return err
		}
		return s.repo.AppendHistory(ctx, h)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("route created", "route_id", r.ID, "route_code", r.RouteCode, "driver_id", r.DriverID, "vehicle_id", r.VehicleID)
	s.afterSave(ctx, m)
	return r, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.RouteUpdateInput, actor audit.Actor) (*models.Route, error) {
	if err := normalizeUpdate(&in); err != nil {
		return nil, err
	}
	s.geocodeInput(ctx, &in)

	now := s.now().UTC()
	var (
		out *models.Route
		m   *Mutation
	)
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		cur, err := s.getRoute(ctx, id)
		if err != nil {
			return err
		}
		if !cur.CanBeEdited() {
			return errors.Wrapf(models.ErrBadRequest, "route %s cannot be edited in status %s", cur.RouteCode, cur.Status)
		}

		next := cloneRoute(cur)
		applyUpdate(next, in, now)

		if next.DriverID != cur.DriverID {
			if _, err := s.validator.ValidateDriverExists(ctx, next.DriverID); err != nil {
				return err
			}
			if err := s.validator.ValidateDriverAssignment(ctx, next.DriverID, next.PlannedDate, next.ID); err != nil {
				return err
			}
		}
		if next.VehicleID != cur.VehicleID {
			if _, err := s.validator.ValidateVehicleExists(ctx, next.VehicleID); err != nil {
				return err
			}
			if err := s.validator.ValidateVehicleAssignment(ctx, next.VehicleID, next.PlannedDate, next.ID); err != nil {
				return err
			}
		}
		if next.RouteCode != cur.RouteCode {
			if err := s.validator.ValidateUniqueRouteCode(ctx, next.RouteCode, next.ID); err != nil {
				return err
			}
		}
		if in.PlannedDate != nil || in.PlannedStartTime != nil || in.PlannedEndTime != nil {
			if err := s.validator.ValidateRouteDates(next.PlannedDate, next.PlannedStartTime, next.PlannedEndTime); err != nil {
				return err
			}
		}
		if in.TotalLoadKg != nil || in.TotalVolumeM3 != nil || next.VehicleID != cur.VehicleID {
			if err := s.validator.ValidateRouteCapacity(ctx, next.VehicleID, next.TotalLoadKg, next.TotalVolumeM3); err != nil {
				return err
			}
		}
		if affectsEstimate(in) {
			s.estimate(next, in.EstimatedDistanceKm, in.EstimatedDurationMinutes)
		}

		changes := s.differ.Diff(snapshot(cur), snapshot(next))
		if len(changes) == 0 {
			out = cur
			return nil
		}

		h := s.newHistory(next, models.HistoryRouteUpdated, actor, now)
		h.Description = fmt.Sprintf("Route %s updated (%d fields)", next.RouteCode, len(changes))
		h.Changes = changes
		mm := Mutation{Event: models.HistoryRouteUpdated, Route: next, PreviousStatus: cur.Status, History: h, Actor: actor}

		if err := s.beforeSave(ctx, mm); err != nil {
			return err
		}
		if err := s.repo.UpdateRoute(ctx, next); err != nil {
			return err
		}
		if in.Stops != nil {
			if err := s.repo.ReplaceStops(ctx, next.ID, next.Stops); err != nil {
				return err
			}
		}
		if err := s.repo.AppendHistory(ctx, h); err != nil {
			return err
		}
		out, m = next, &mm
		return nil
	})
	if err != nil {
		return nil, err
	}
	if m != nil {
		s.afterSave(ctx, *m)
	}
	return out, nil
}

// Remove soft-deletes a route. Routes in progress cannot be removed.
func (s *Service) Remove(ctx context.Context, id string, actor audit.Actor) error {
	now := s.now().UTC()
	var m Mutation
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		r, err := s.getRoute(ctx, id)
		if err != nil {
			return err
		}
		if !r.CanBeDeleted() {
			return errors.Wrapf(models.ErrBadRequest, "route %s cannot be removed while %s", r.RouteCode, r.Status)
		}

		h := s.newHistory(r, models.HistoryRouteDeleted, actor, now)
		h.Description = fmt.Sprintf("Route %s removed", r.RouteCode)
		h.PreviousStatus = statusPtr(r.Status)
		r.DeletedAt = &now
		m = Mutation{Event: models.HistoryRouteDeleted, Route: r, PreviousStatus: r.Status, History: h, Actor: actor}

		if err := s.beforeSave(ctx, m); err != nil {
			return err
		}
		if err := s.repo.AppendHistory(ctx, h); err != nil {
			return err
		}
		return s.repo.SoftDeleteRoute(ctx, r.ID, now)
	})
	if err != nil {
		return err
	}

	slog.Info("route removed", "route_id", id)
	s.afterSave(ctx, m)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Route, error) {
	if s.cacheEnabled() {
		b, ok, err := s.cache.Get(ctx, currentKey(id))
		if err == nil && ok {
			var r models.Route
			if json.Unmarshal(b, &r) == nil {
				return &r, nil
			}
		}
	}

	r, err := s.getRoute(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheRoute(ctx, r)
	return r, nil
}

// RouteView is a route plus its derived metrics.
type RouteView struct {
	*models.Route
	ProgressPercentage  float64
	CapacityUtilization float64
	Delayed             bool
}

func (s *Service) GetView(ctx context.Context, id string) (*RouteView, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, r)
}

func (s *Service) view(ctx context.Context, r *models.Route) (*RouteView, error) {
	v := &RouteView{
		Route:              r,
		ProgressPercentage: r.ProgressPercentage(),
		Delayed:            r.IsDelayed(s.now()),
	}
	if r.TotalLoadKg != nil {
		veh, err := s.repo.GetVehicle(ctx, r.VehicleID)
		if err != nil {
			return nil, err
		}
		if veh != nil {
			v.CapacityUtilization = r.CapacityUtilization(veh.LoadCapacityKg)
		}
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, f models.RouteFilter) ([]*models.Route, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, errors.Wrapf(models.ErrBadRequest, "unknown status %q", *f.Status)
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.ListRoutes(ctx, f)
}

func (s *Service) ListHistory(ctx context.Context, routeID string, limit, offset int) ([]*models.RouteHistory, error) {
	if _, err := s.getRoute(ctx, routeID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListHistory(ctx, routeID, limit, offset)
}

// Estimate previews distance, duration and cost for an ordered list of coordinates.
func (s *Service) Estimate(t models.RouteType, points []string) (geo.Estimate, error) {
	if t == "" {
		t = models.RouteTypeUrban
	}
	if !t.Valid() {
		return geo.Estimate{}, errors.Wrapf(models.ErrBadRequest, "unknown route type %q", t)
	}
	if len(points) < 2 {
		return geo.Estimate{}, errors.Wrap(models.ErrBadRequest, "at least two points are required")
	}
	return geo.EstimateRoute(t, points), nil
}

func (s *Service) getRoute(ctx context.Context, id string) (*models.Route, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.Wrap(models.ErrBadRequest, "route id is required")
	}
	r, err := s.repo.GetRoute(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "route %s", id)
	}
	return r, nil
}

func (s *Service) nextRouteCode(ctx context.Context, day time.Time) (string, error) {
	prefix := "RT-" + day.Format("20060102") + "-"
	seq, err := s.repo.NextRouteCodeSeq(ctx, prefix)
	if err != nil {
		return "", err
	}
	if seq > maxRouteCodeSeq {
		return "", errors.Wrapf(models.ErrConflict, "no route codes left for %s", day.Format(models.DateLayout))
	}
	return fmt.Sprintf("%s%03d", prefix, seq), nil
}

func (s *Service) newHistory(r *models.Route, event models.HistoryEventType, actor audit.Actor, now time.Time) *models.RouteHistory {
	h := &models.RouteHistory{
		ID:        uuid.NewString(),
		RouteID:   r.ID,
		EventType: event,
		CreatedAt: now,
	}
	actor.Stamp(h)
	return h
}

func (s *Service) beforeSave(ctx context.Context, m Mutation) error {
	for _, h := range s.hooks {
		if err := h.BeforeSave(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) afterSave(ctx context.Context, m Mutation) {
	if m.Route.DeletedAt != nil {
		s.evict(ctx, m.Route.ID)
	} else {
		s.cacheRoute(ctx, m.Route)
	}
	for _, h := range s.hooks {
		if err := h.AfterSave(ctx, m); err != nil {
			slog.Warn("route hook failed", "route_id", m.Route.ID, "event", m.Event, "err", err)
		}
	}
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *Service) cacheRoute(ctx context.Context, r *models.Route) {
	if !s.cacheEnabled() {
		return
	}
	b, err := json.Marshal(r)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, currentKey(r.ID), b, s.cacheTTL)
}

func (s *Service) evict(ctx context.Context, id string) {
	if !s.cacheEnabled() {
		return
	}
	_ = s.cache.Delete(ctx, currentKey(id))
}

func currentKey(id string) string {
	return fmt.Sprintf("route:%s:current", id)
}

// geocodeRoute fills missing coordinates from addresses. Failures only log.
func (s *Service) geocodeRoute(ctx context.Context, r *models.Route) {
	if s.geocoder == nil {
		return
	}
	r.OriginCoordinates = s.resolve(ctx, r.OriginAddress, r.OriginCoordinates)
	r.DestinationCoordinates = s.resolve(ctx, r.DestinationAddress, r.DestinationCoordinates)
	for _, st := range r.Stops {
		st.Coordinates = s.resolve(ctx, st.Address, st.Coordinates)
	}
}

func (s *Service) geocodeInput(ctx context.Context, in *models.RouteUpdateInput) {
	if s.geocoder == nil {
		return
	}
	in.OriginCoordinates = s.resolve(ctx, in.OriginAddress, in.OriginCoordinates)
	in.DestinationCoordinates = s.resolve(ctx, in.DestinationAddress, in.DestinationCoordinates)
	for i := range in.Stops {
		in.Stops[i].Coordinates = s.resolve(ctx, in.Stops[i].Address, in.Stops[i].Coordinates)
	}
}

func (s *Service) resolve(ctx context.Context, address, coords *string) *string {
	if coords != nil || address == nil || strings.TrimSpace(*address) == "" {
		return coords
	}
	p, err := s.geocoder.Geocode(ctx, *address)
	if err != nil {
		slog.Warn("geocode failed", "address", *address, "err", err)
		return nil
	}
	return &p
}

// estimate fills distance, duration and cost. Explicit values win; otherwise
// they are computed from origin, stops and destination in that order.
func (s *Service) estimate(r *models.Route, distance *float64, duration *int) {
	if distance == nil {
		if pts := routePoints(r); len(pts) >= 2 {
			d := geo.CalculateTotalDistance(pts)
			distance = &d
		} else {
			distance = r.EstimatedDistanceKm
		}
	}
	if distance == nil {
		if duration != nil {
			r.EstimatedDurationMinutes = duration
		}
		return
	}

	r.EstimatedDistanceKm = distance
	if duration == nil {
		c := geo.Characteristics(r.Type)
		d := geo.CalculateEstimatedDuration(*distance, c.AvgSpeedKmh, c.DelayFactor)
		duration = &d
	}
	r.EstimatedDurationMinutes = duration
	cost := geo.EstimateCost(*distance, r.Type)
	r.EstimatedCost = &cost
}

func routePoints(r *models.Route) []string {
	var pts []string
	if r.OriginCoordinates != nil {
		pts = append(pts, *r.OriginCoordinates)
	}
	stops := make([]*models.RouteStop, len(r.Stops))
	copy(stops, r.Stops)
	sort.Slice(stops, func(i, j int) bool { return stops[i].SequenceOrder < stops[j].SequenceOrder })
	for _, st := range stops {
		if st.Coordinates != nil {
			pts = append(pts, *st.Coordinates)
		}
	}
	if r.DestinationCoordinates != nil {
		pts = append(pts, *r.DestinationCoordinates)
	}
	return pts
}

func affectsEstimate(in models.RouteUpdateInput) bool {
	return in.OriginCoordinates != nil || in.DestinationCoordinates != nil || in.Stops != nil ||
		in.Type != nil || in.EstimatedDistanceKm != nil || in.EstimatedDurationMinutes != nil
}

func normalizeCreate(in *models.RouteCreateInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return errors.Wrap(models.ErrBadRequest, "name is required")
	}
	if in.DriverID == "" {
		return errors.Wrap(models.ErrBadRequest, "driverId is required")
	}
	if in.VehicleID == "" {
		return errors.Wrap(models.ErrBadRequest, "vehicleId is required")
	}
	if in.Type == "" {
		in.Type = models.RouteTypeUrban
	}
	if !in.Type.Valid() {
		return errors.Wrapf(models.ErrBadRequest, "unknown route type %q", in.Type)
	}
	if in.RouteCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*in.RouteCode))
		if code == "" {
			in.RouteCode = nil
		} else if !validators.RouteCode(code) {
			return errors.Wrapf(models.ErrBadRequest, "route code %q must look like RT-YYYYMMDD-NNN", code)
		} else {
			in.RouteCode = &code
		}
	}
	in.PlannedStartTime = blankToNil(in.PlannedStartTime)
	in.PlannedEndTime = blankToNil(in.PlannedEndTime)
	return normalizeStops(in.Stops)
}

func normalizeUpdate(in *models.RouteUpdateInput) error {
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return errors.Wrap(models.ErrBadRequest, "name must not be empty")
		}
		in.Name = &n
	}
	if in.DriverID != nil && *in.DriverID == "" {
		return errors.Wrap(models.ErrBadRequest, "driverId must not be empty")
	}
	if in.VehicleID != nil && *in.VehicleID == "" {
		return errors.Wrap(models.ErrBadRequest, "vehicleId must not be empty")
	}
	if in.Type != nil && !in.Type.Valid() {
		return errors.Wrapf(models.ErrBadRequest, "unknown route type %q", *in.Type)
	}
	if in.RouteCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*in.RouteCode))
		if !validators.RouteCode(code) {
			return errors.Wrapf(models.ErrBadRequest, "route code %q must look like RT-YYYYMMDD-NNN", code)
		}
		in.RouteCode = &code
	}
	return normalizeStops(in.Stops)
}

func normalizeStops(stops []models.RouteStopInput) error {
	seen := make(map[int]struct{}, len(stops))
	for i := range stops {
		st := &stops[i]
		if st.CustomerAddressID == "" {
			return errors.Wrapf(models.ErrBadRequest, "stop %d: customerAddressId is required", i)
		}
		if st.SequenceOrder < 1 {
			return errors.Wrapf(models.ErrBadRequest, "stop %d: sequenceOrder must be >= 1", i)
		}
		if _, dup := seen[st.SequenceOrder]; dup {
			return errors.Wrapf(models.ErrBadRequest, "duplicate sequenceOrder %d", st.SequenceOrder)
		}
		seen[st.SequenceOrder] = struct{}{}
		if st.DeliveryType == "" {
			st.DeliveryType = models.DeliveryTypeDelivery
		}
		if !models.ValidDeliveryType(st.DeliveryType) {
			return errors.Wrapf(models.ErrBadRequest, "stop %d: unknown delivery type %q", i, st.DeliveryType)
		}
	}
	return nil
}

func buildStops(routeID string, in []models.RouteStopInput, now time.Time) []*models.RouteStop {
	out := make([]*models.RouteStop, 0, len(in))
	for _, st := range in {
		out = append(out, &models.RouteStop{
			ID:                   uuid.NewString(),
			RouteID:              routeID,
			CustomerAddressID:    st.CustomerAddressID,
			Address:              st.Address,
			Coordinates:          st.Coordinates,
			SequenceOrder:        st.SequenceOrder,
			Status:               models.StopStatusPending,
			DeliveryType:         st.DeliveryType,
			PlannedArrivalTime:   st.PlannedArrivalTime,
			PlannedDepartureTime: st.PlannedDepartureTime,
			Notes:                st.Notes,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceOrder < out[j].SequenceOrder })
	return out
}

func applyUpdate(r *models.Route, in models.RouteUpdateInput, now time.Time) {
	if in.RouteCode != nil {
		r.RouteCode = *in.RouteCode
	}
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Description != nil {
		r.Description = blankToNil(in.Description)
	}
	if in.DriverID != nil {
		r.DriverID = *in.DriverID
	}
	if in.VehicleID != nil {
		r.VehicleID = *in.VehicleID
	}
	if in.Type != nil {
		r.Type = *in.Type
	}
	if in.PlannedDate != nil {
		r.PlannedDate = dateOnly(*in.PlannedDate)
	}
	if in.PlannedStartTime != nil {
		r.PlannedStartTime = blankToNil(in.PlannedStartTime)
	}
	if in.PlannedEndTime != nil {
		r.PlannedEndTime = blankToNil(in.PlannedEndTime)
	}
	if in.OriginAddress != nil {
		r.OriginAddress = blankToNil(in.OriginAddress)
	}
	if in.OriginCoordinates != nil {
		r.OriginCoordinates = blankToNil(in.OriginCoordinates)
	}
	if in.DestinationAddress != nil {
		r.DestinationAddress = blankToNil(in.DestinationAddress)
	}
	if in.DestinationCoordinates != nil {
		r.DestinationCoordinates = blankToNil(in.DestinationCoordinates)
	}
	if in.TotalLoadKg != nil {
		r.TotalLoadKg = in.TotalLoadKg
	}
	if in.TotalVolumeM3 != nil {
		r.TotalVolumeM3 = in.TotalVolumeM3
	}
	if in.Notes != nil {
		r.Notes = blankToNil(in.Notes)
	}
	if in.Stops != nil {
		r.Stops = buildStops(r.ID, in.Stops, now)
	}
	r.UpdatedAt = now
}

func cloneRoute(r *models.Route) *models.Route {
	c := *r
	c.Stops = append([]*models.RouteStop(nil), r.Stops...)
	return &c
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func statusPtr(s models.RouteStatus) *models.RouteStatus {
	return &s
}
