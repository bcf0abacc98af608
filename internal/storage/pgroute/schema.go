package pgroute

import (
	"context"

	"github.com/pkg/errors"
)

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS drivers (
  id UUID PRIMARY KEY,
  name TEXT NOT NULL,
  cpf TEXT NOT NULL UNIQUE,
  license_number TEXT NOT NULL UNIQUE,
  license_category TEXT NOT NULL,
  license_expiry DATE NULL,
  phone TEXT NULL,
  status TEXT NOT NULL CHECK (status IN ('AVAILABLE','ON_ROUTE','OFF_DUTY','INACTIVE')),
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`,
		`
CREATE TABLE IF NOT EXISTS vehicles (
  id UUID PRIMARY KEY,
  license_plate TEXT NOT NULL UNIQUE,
  model TEXT NOT NULL,
  status TEXT NOT NULL CHECK (status IN ('ACTIVE','IN_USE','MAINTENANCE','INACTIVE','OUT_OF_SERVICE')),
  load_capacity_kg DOUBLE PRECISION NULL,
  volume_capacity_m3 DOUBLE PRECISION NULL,
  owner_document TEXT NULL,
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`,
		`
CREATE TABLE IF NOT EXISTS routes (
  id UUID PRIMARY KEY,
  route_code TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NULL,
  driver_id UUID NOT NULL REFERENCES drivers(id) ON DELETE RESTRICT,
  vehicle_id UUID NOT NULL REFERENCES vehicles(id) ON DELETE RESTRICT,
  status TEXT NOT NULL CHECK (status IN ('PLANNED','IN_PROGRESS','PAUSED','COMPLETED','CANCELLED')),
  type TEXT NOT NULL CHECK (type IN ('URBAN','INTERSTATE','RURAL','EXPRESS','LOCAL')),
  planned_date DATE NOT NULL,
  planned_start_time TEXT NULL,
  planned_end_time TEXT NULL,
  origin_address TEXT NULL,
  origin_coordinates TEXT NULL,
  destination_address TEXT NULL,
  destination_coordinates TEXT NULL,
  estimated_distance_km DOUBLE PRECISION NULL,
  estimated_duration_minutes INT NULL,
  estimated_cost DOUBLE PRECISION NULL,
  actual_start_time TIMESTAMPTZ NULL,
  actual_end_time TIMESTAMPTZ NULL,
  actual_distance_km DOUBLE PRECISION NULL,
  actual_duration_minutes INT NULL,
  total_load_kg DOUBLE PRECISION NULL CHECK (total_load_kg >= 0),
  total_volume_m3 DOUBLE PRECISION NULL CHECK (total_volume_m3 >= 0),
  cancellation_reason TEXT NULL,
  cancelled_at TIMESTAMPTZ NULL,
  notes TEXT NULL,
  delay_notified_at TIMESTAMPTZ NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL,
  deleted_at TIMESTAMPTZ NULL
)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_routes_code_live ON routes(route_code) WHERE deleted_at IS NULL`,
		// One active route per driver and per vehicle; backs the validator under concurrent writers.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_routes_driver_active ON routes(driver_id)
  WHERE status IN ('PLANNED','IN_PROGRESS','PAUSED') AND deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_routes_vehicle_active ON routes(vehicle_id)
  WHERE status IN ('PLANNED','IN_PROGRESS','PAUSED') AND deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_routes_planned_date ON routes(planned_date) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_routes_status ON routes(status) WHERE deleted_at IS NULL`,
		`
CREATE TABLE IF NOT EXISTS route_stops (
  id UUID PRIMARY KEY,
  route_id UUID NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
  customer_address_id TEXT NOT NULL,
  address TEXT NULL,
  coordinates TEXT NULL,
  sequence_order INT NOT NULL CHECK (sequence_order >= 1),
  status TEXT NOT NULL CHECK (status IN ('PENDING','IN_PROGRESS','COMPLETED','SKIPPED','FAILED')),
  delivery_type TEXT NOT NULL CHECK (delivery_type IN ('DELIVERY','PICKUP','BOTH')),
  planned_arrival_time TIMESTAMPTZ NULL,
  planned_departure_time TIMESTAMPTZ NULL,
  actual_arrival_time TIMESTAMPTZ NULL,
  actual_departure_time TIMESTAMPTZ NULL,
  notes TEXT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL,
  UNIQUE (route_id, sequence_order)
)`,
		`
CREATE TABLE IF NOT EXISTS route_history (
  id UUID PRIMARY KEY,
  route_id UUID NOT NULL REFERENCES routes(id) ON DELETE RESTRICT,
  event_type TEXT NOT NULL,
  description TEXT NOT NULL,
  previous_status TEXT NULL,
  new_status TEXT NULL,
  changes JSONB NULL,
  user_id TEXT NULL,
  user_name TEXT NULL,
  user_type TEXT NULL,
  request_id TEXT NULL,
  ip_address TEXT NULL,
  created_at TIMESTAMPTZ NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_route_history_route_created ON route_history(route_id, created_at)`,
		`
CREATE OR REPLACE FUNCTION route_history_append_only() RETURNS trigger AS $$
BEGIN
  RAISE EXCEPTION 'route_history is append-only';
END;
$$ LANGUAGE plpgsql`,
		`
CREATE OR REPLACE TRIGGER trg_route_history_append_only
BEFORE UPDATE OR DELETE ON route_history
FOR EACH ROW EXECUTE FUNCTION route_history_append_only()`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
