package pgroute

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BearBump/RouteBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const routeColumns = `
  id, route_code, name, description, driver_id, vehicle_id, status, type,
  planned_date, planned_start_time, planned_end_time,
  origin_address, origin_coordinates, destination_address, destination_coordinates,
  estimated_distance_km, estimated_duration_minutes, estimated_cost,
  actual_start_time, actual_end_time, actual_distance_km, actual_duration_minutes,
  total_load_kg, total_volume_m3,
  cancellation_reason, cancelled_at, notes, delay_notified_at,
  created_at, updated_at, deleted_at`

const stopColumns = `
  id, route_id, customer_address_id, address, coordinates, sequence_order, status, delivery_type,
  planned_arrival_time, planned_departure_time, actual_arrival_time, actual_departure_time,
  notes, created_at, updated_at`

var activeStatuses = []string{
	string(models.RouteStatusPlanned),
	string(models.RouteStatusInProgress),
	string(models.RouteStatusPaused),
}

func scanRoute(row pgx.Row) (*models.Route, error) {
	var r models.Route
	err := row.Scan(
		&r.ID, &r.RouteCode, &r.Name, &r.Description, &r.DriverID, &r.VehicleID, &r.Status, &r.Type,
		&r.PlannedDate, &r.PlannedStartTime, &r.PlannedEndTime,
		&r.OriginAddress, &r.OriginCoordinates, &r.DestinationAddress, &r.DestinationCoordinates,
		&r.EstimatedDistanceKm, &r.EstimatedDurationMinutes, &r.EstimatedCost,
		&r.ActualStartTime, &r.ActualEndTime, &r.ActualDistanceKm, &r.ActualDurationMinutes,
		&r.TotalLoadKg, &r.TotalVolumeM3,
		&r.CancellationReason, &r.CancelledAt, &r.Notes, &r.DelayNotifiedAt,
		&r.CreatedAt, &r.UpdatedAt, &r.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	r.PlannedDate = time.Date(r.PlannedDate.Year(), r.PlannedDate.Month(), r.PlannedDate.Day(), 0, 0, 0, 0, time.UTC)
	return &r, nil
}

func scanStop(row pgx.Row) (*models.RouteStop, error) {
	var st models.RouteStop
	err := row.Scan(
		&st.ID, &st.RouteID, &st.CustomerAddressID, &st.Address, &st.Coordinates, &st.SequenceOrder, &st.Status, &st.DeliveryType,
		&st.PlannedArrivalTime, &st.PlannedDepartureTime, &st.ActualArrivalTime, &st.ActualDepartureTime,
		&st.Notes, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func collectRoutes(rows pgx.Rows) ([]*models.Route, error) {
	defer rows.Close()
	var out []*models.Route
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan route")
		}
		out = append(out, r)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

// GetRoute returns a live route with its stops, or (nil, nil).
func (s *Storage) GetRoute(ctx context.Context, id string) (*models.Route, error) {
	q := s.conn(ctx)
	r, err := scanRoute(q.QueryRow(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = $1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr(errors.Wrap(err, "select route"))
	}

	stops, err := s.listStops(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Stops = stops
	return r, nil
}

func (s *Storage) listStops(ctx context.Context, routeID string) ([]*models.RouteStop, error) {
	rows, err := s.conn(ctx).Query(ctx, `SELECT `+stopColumns+` FROM route_stops WHERE route_id = $1 ORDER BY sequence_order`, routeID)
	if err != nil {
		return nil, errors.Wrap(err, "select stops")
	}
	defer rows.Close()

	var out []*models.RouteStop
	for rows.Next() {
		st, err := scanStop(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan stop")
		}
		out = append(out, st)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

// ListRoutes returns live routes without stops, newest planned date first.
func (s *Storage) ListRoutes(ctx context.Context, f models.RouteFilter) ([]*models.Route, error) {
	where := []string{"deleted_at IS NULL"}
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}
	if f.DriverID != nil {
		add("driver_id = $%d", *f.DriverID)
	}
	if f.VehicleID != nil {
		add("vehicle_id = $%d", *f.VehicleID)
	}
	if f.PlannedDate != nil {
		add("planned_date = $%d", *f.PlannedDate)
	}
	args = append(args, f.Limit, f.Offset)

	sql := `SELECT ` + routeColumns + ` FROM routes WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(` ORDER BY planned_date DESC, route_code ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := s.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(errors.Wrap(err, "select routes"))
	}
	return collectRoutes(rows)
}

func (s *Storage) findActive(ctx context.Context, column, value, excludeRouteID string) (*models.Route, error) {
	sql := `SELECT ` + routeColumns + ` FROM routes
WHERE ` + column + ` = $1
  AND status = ANY($2)
  AND deleted_at IS NULL
  AND ($3::text = '' OR id::text <> $3::text)
LIMIT 1`
	r, err := scanRoute(s.conn(ctx).QueryRow(ctx, sql, value, activeStatuses, excludeRouteID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr(errors.Wrapf(err, "select active route by %s", column))
	}
	return r, nil
}

func (s *Storage) FindActiveRouteByDriver(ctx context.Context, driverID, excludeRouteID string) (*models.Route, error) {
	return s.findActive(ctx, "driver_id", driverID, excludeRouteID)
}

func (s *Storage) FindActiveRouteByVehicle(ctx context.Context, vehicleID, excludeRouteID string) (*models.Route, error) {
	return s.findActive(ctx, "vehicle_id", vehicleID, excludeRouteID)
}

func (s *Storage) RouteCodeExists(ctx context.Context, code, excludeRouteID string) (bool, error) {
	var exists bool
	err := s.conn(ctx).QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM routes
  WHERE route_code = $1 AND deleted_at IS NULL AND ($2::text = '' OR id::text <> $2::text)
)`, code, excludeRouteID).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "check route code")
	}
	return exists, nil
}

// NextRouteCodeSeq looks at every code with the prefix, deleted ones included,
// so a number is never handed out twice.
func (s *Storage) NextRouteCodeSeq(ctx context.Context, prefix string) (int, error) {
	var next int
	err := s.conn(ctx).QueryRow(ctx, `
SELECT COALESCE(MAX(RIGHT(route_code, 3)::int), 0) + 1
FROM routes
WHERE route_code LIKE $1 AND route_code ~ '^RT-[0-9]{8}-[0-9]{3}$'
`, prefix+"%").Scan(&next)
	if err != nil {
		return 0, errors.Wrap(err, "next route code")
	}
	return next, nil
}

func (s *Storage) CreateRoute(ctx context.Context, r *models.Route) error {
	_, err := s.conn(ctx).Exec(ctx, `
INSERT INTO routes (`+routeColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31)
`,
		r.ID, r.RouteCode, r.Name, r.Description, r.DriverID, r.VehicleID, string(r.Status), string(r.Type),
		r.PlannedDate, r.PlannedStartTime, r.PlannedEndTime,
		r.OriginAddress, r.OriginCoordinates, r.DestinationAddress, r.DestinationCoordinates,
		r.EstimatedDistanceKm, r.EstimatedDurationMinutes, r.EstimatedCost,
		r.ActualStartTime, r.ActualEndTime, r.ActualDistanceKm, r.ActualDurationMinutes,
		r.TotalLoadKg, r.TotalVolumeM3,
		r.CancellationReason, r.CancelledAt, r.Notes, r.DelayNotifiedAt,
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(), r.DeletedAt,
	)
	if err != nil {
		return mapErr(errors.Wrap(err, "insert route"))
	}
	return s.insertStops(ctx, r.Stops)
}

func (s *Storage) UpdateRoute(ctx context.Context, r *models.Route) error {
	_, err := s.conn(ctx).Exec(ctx, `
UPDATE routes SET
  route_code = $2, name = $3, description = $4, driver_id = $5, vehicle_id = $6, type = $7,
  planned_date = $8, planned_start_time = $9, planned_end_time = $10,
  origin_address = $11, origin_coordinates = $12, destination_address = $13, destination_coordinates = $14,
  estimated_distance_km = $15, estimated_duration_minutes = $16, estimated_cost = $17,
  total_load_kg = $18, total_volume_m3 = $19, notes = $20, updated_at = $21
WHERE id = $1 AND deleted_at IS NULL
`,
		r.ID, r.RouteCode, r.Name, r.Description, r.DriverID, r.VehicleID, string(r.Type),
		r.PlannedDate, r.PlannedStartTime, r.PlannedEndTime,
		r.OriginAddress, r.OriginCoordinates, r.DestinationAddress, r.DestinationCoordinates,
		r.EstimatedDistanceKm, r.EstimatedDurationMinutes, r.EstimatedCost,
		r.TotalLoadKg, r.TotalVolumeM3, r.Notes, r.UpdatedAt.UTC(),
	)
	return mapErr(errors.Wrap(err, "update route"))
}

// UpdateRouteStatus writes the lifecycle columns only when the stored status is still from.
func (s *Storage) UpdateRouteStatus(ctx context.Context, r *models.Route, from models.RouteStatus) (bool, error) {
	tag, err := s.conn(ctx).Exec(ctx, `
UPDATE routes SET
  status = $3,
  actual_start_time = $4, actual_end_time = $5, actual_distance_km = $6, actual_duration_minutes = $7,
  cancellation_reason = $8, cancelled_at = $9, updated_at = $10
WHERE id = $1 AND status = $2 AND deleted_at IS NULL
`,
		r.ID, string(from), string(r.Status),
		r.ActualStartTime, r.ActualEndTime, r.ActualDistanceKm, r.ActualDurationMinutes,
		r.CancellationReason, r.CancelledAt, r.UpdatedAt.UTC(),
	)
	if err != nil {
		return false, mapErr(errors.Wrap(err, "update route status"))
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Storage) ReplaceStops(ctx context.Context, routeID string, stops []*models.RouteStop) error {
	if _, err := s.conn(ctx).Exec(ctx, `DELETE FROM route_stops WHERE route_id = $1`, routeID); err != nil {
		return errors.Wrap(err, "delete stops")
	}
	return s.insertStops(ctx, stops)
}

func (s *Storage) insertStops(ctx context.Context, stops []*models.RouteStop) error {
	q := s.conn(ctx)
	for _, st := range stops {
		_, err := q.Exec(ctx, `
INSERT INTO route_stops (`+stopColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
`,
			st.ID, st.RouteID, st.CustomerAddressID, st.Address, st.Coordinates, st.SequenceOrder, st.Status, st.DeliveryType,
			st.PlannedArrivalTime, st.PlannedDepartureTime, st.ActualArrivalTime, st.ActualDepartureTime,
			st.Notes, st.CreatedAt.UTC(), st.UpdatedAt.UTC(),
		)
		if err != nil {
			return mapErr(errors.Wrap(err, "insert stop"))
		}
	}
	return nil
}

func (s *Storage) UpdateStop(ctx context.Context, st *models.RouteStop) error {
	_, err := s.conn(ctx).Exec(ctx, `
UPDATE route_stops SET
  status = $3, actual_arrival_time = $4, actual_departure_time = $5, notes = $6, updated_at = $7
WHERE id = $1 AND route_id = $2
`, st.ID, st.RouteID, st.Status, st.ActualArrivalTime, st.ActualDepartureTime, st.Notes, st.UpdatedAt.UTC())
	return mapErr(errors.Wrap(err, "update stop"))
}

func (s *Storage) SoftDeleteRoute(ctx context.Context, id string, at time.Time) error {
	_, err := s.conn(ctx).Exec(ctx, `UPDATE routes SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at.UTC())
	return errors.Wrap(err, "soft delete route")
}

// ClaimDelayedRoutes picks active routes past their planned end that were not
// reported yet and marks them reported in the same transaction.
// Uses SELECT ... FOR UPDATE SKIP LOCKED so parallel workers do not collide.
func (s *Storage) ClaimDelayedRoutes(ctx context.Context, now time.Time, limit int) ([]*models.Route, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
SELECT `+routeColumns+`
FROM routes
WHERE status = ANY($2)
  AND deleted_at IS NULL
  AND delay_notified_at IS NULL
  AND planned_date + COALESCE(planned_end_time::time, time '23:59:59') < ($1::timestamptz AT TIME ZONE 'UTC')
ORDER BY planned_date ASC, route_code ASC
LIMIT $3
FOR UPDATE SKIP LOCKED
`, now.UTC(), activeStatuses, limit)
	if err != nil {
		return nil, errors.Wrap(err, "select delayed routes")
	}
	picked, err := collectRoutes(rows)
	if err != nil {
		return nil, err
	}

	for _, r := range picked {
		if _, err := tx.Exec(ctx, `UPDATE routes SET delay_notified_at = $2 WHERE id = $1`, r.ID, now.UTC()); err != nil {
			return nil, errors.Wrap(err, "mark delay notified")
		}
		at := now.UTC()
		r.DelayNotifiedAt = &at
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit tx")
	}
	return picked, nil
}

// ReleaseDelayNotice clears the mark so the next claim picks the route again.
func (s *Storage) ReleaseDelayNotice(ctx context.Context, routeID string) error {
	_, err := s.conn(ctx).Exec(ctx, `UPDATE routes SET delay_notified_at = NULL WHERE id = $1`, routeID)
	return errors.Wrap(err, "release delay notice")
}
