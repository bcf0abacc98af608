package pgroute

import (
	"context"
	"time"

	"github.com/BearBump/RouteBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const driverColumns = `
  id, name, cpf, license_number, license_category, license_expiry, phone, status, is_active, created_at, updated_at`

const vehicleColumns = `
  id, license_plate, model, status, load_capacity_kg, volume_capacity_m3, owner_document, is_active, created_at, updated_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	if err := row.Scan(
		&d.ID, &d.Name, &d.CPF, &d.LicenseNumber, &d.LicenseCategory, &d.LicenseExpiry, &d.Phone,
		&d.Status, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := row.Scan(
		&v.ID, &v.LicensePlate, &v.Model, &v.Status, &v.LoadCapacityKg, &v.VolumeCapacityM3, &v.OwnerDocument,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Storage) CreateDriver(ctx context.Context, d *models.Driver) error {
	_, err := s.conn(ctx).Exec(ctx, `
INSERT INTO drivers (`+driverColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`, d.ID, d.Name, d.CPF, d.LicenseNumber, d.LicenseCategory, d.LicenseExpiry, d.Phone,
		d.Status, d.IsActive, d.CreatedAt.UTC(), d.UpdatedAt.UTC())
	return mapErr(errors.Wrap(err, "insert driver"))
}

// GetDriver returns (nil, nil) when the driver does not exist.
func (s *Storage) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	d, err := scanDriver(s.conn(ctx).QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr(errors.Wrap(err, "select driver"))
	}
	return d, nil
}

func (s *Storage) ListDrivers(ctx context.Context, limit, offset int) ([]*models.Driver, error) {
	rows, err := s.conn(ctx).Query(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "select drivers")
	}
	defer rows.Close()

	var out []*models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan driver")
		}
		out = append(out, d)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) UpdateDriverStatus(ctx context.Context, id, status string, isActive bool, at time.Time) (bool, error) {
	tag, err := s.conn(ctx).Exec(ctx, `UPDATE drivers SET status = $2, is_active = $3, updated_at = $4 WHERE id = $1`, id, status, isActive, at.UTC())
	if err != nil {
		return false, mapErr(errors.Wrap(err, "update driver status"))
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Storage) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	_, err := s.conn(ctx).Exec(ctx, `
INSERT INTO vehicles (`+vehicleColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`, v.ID, v.LicensePlate, v.Model, v.Status, v.LoadCapacityKg, v.VolumeCapacityM3, v.OwnerDocument,
		v.IsActive, v.CreatedAt.UTC(), v.UpdatedAt.UTC())
	return mapErr(errors.Wrap(err, "insert vehicle"))
}

// GetVehicle returns (nil, nil) when the vehicle does not exist.
func (s *Storage) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	v, err := scanVehicle(s.conn(ctx).QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr(errors.Wrap(err, "select vehicle"))
	}
	return v, nil
}

func (s *Storage) ListVehicles(ctx context.Context, limit, offset int) ([]*models.Vehicle, error) {
	rows, err := s.conn(ctx).Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY license_plate ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "select vehicles")
	}
	defer rows.Close()

	var out []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan vehicle")
		}
		out = append(out, v)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) UpdateVehicleStatus(ctx context.Context, id, status string, isActive bool, at time.Time) (bool, error) {
	tag, err := s.conn(ctx).Exec(ctx, `UPDATE vehicles SET status = $2, is_active = $3, updated_at = $4 WHERE id = $1`, id, status, isActive, at.UTC())
	if err != nil {
		return false, mapErr(errors.Wrap(err, "update vehicle status"))
	}
	return tag.RowsAffected() == 1, nil
}
