// Package fleet registers the drivers and vehicles that routes are assigned to.
package fleet

import (
	"context"
	"strings"
	"time"

	"github.com/BearBump/RouteBox/internal/models"
	"github.com/BearBump/RouteBox/internal/validators"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Repository interface {
	CreateDriver(ctx context.Context, d *models.Driver) error
	GetDriver(ctx context.Context, id string) (*models.Driver, error)
	ListDrivers(ctx context.Context, limit, offset int) ([]*models.Driver, error)
	UpdateDriverStatus(ctx context.Context, id, status string, isActive bool, at time.Time) (bool, error)

	CreateVehicle(ctx context.Context, v *models.Vehicle) error
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, limit, offset int) ([]*models.Vehicle, error)
	UpdateVehicleStatus(ctx context.Context, id, status string, isActive bool, at time.Time) (bool, error)

	FindActiveRouteByDriver(ctx context.Context, driverID, excludeRouteID string) (*models.Route, error)
	FindActiveRouteByVehicle(ctx context.Context, vehicleID, excludeRouteID string) (*models.Route, error)
}

var licenseCategories = map[string]struct{}{
	"A": {}, "B": {}, "C": {}, "D": {}, "E": {},
	"AB": {}, "AC": {}, "AD": {}, "AE": {},
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) RegisterDriver(ctx context.Context, in models.DriverCreateInput) (*models.Driver, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.Wrap(models.ErrBadRequest, "name is required")
	}
	if !validators.CPF(in.CPF) {
		return nil, errors.Wrap(models.ErrBadRequest, "invalid cpf")
	}
	if !validators.CNH(in.LicenseNumber) {
		return nil, errors.Wrap(models.ErrBadRequest, "invalid license number")
	}
	category := strings.ToUpper(strings.TrimSpace(in.LicenseCategory))
	if _, ok := licenseCategories[category]; !ok {
		return nil, errors.Wrapf(models.ErrBadRequest, "invalid license category %q", in.LicenseCategory)
	}
	now := s.now()
	if in.LicenseExpiry != nil && in.LicenseExpiry.Before(now) {
		return nil, errors.Wrap(models.ErrBadRequest, "license is expired")
	}

	d := &models.Driver{
		ID:              uuid.NewString(),
		Name:            name,
		CPF:             validators.Digits(in.CPF),
		LicenseNumber:   validators.Digits(in.LicenseNumber),
		LicenseCategory: category,
		LicenseExpiry:   in.LicenseExpiry,
		Phone:           in.Phone,
		Status:          models.DriverStatusAvailable,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.CreateDriver(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	d, err := s.repo.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "driver %s", id)
	}
	return d, nil
}

func (s *Service) ListDrivers(ctx context.Context, limit, offset int) ([]*models.Driver, error) {
	limit, offset = page(limit, offset)
	return s.repo.ListDrivers(ctx, limit, offset)
}

// DeactivateDriver takes a driver out of rotation. A driver holding an active
// route cannot be deactivated.
func (s *Service) DeactivateDriver(ctx context.Context, id string) (*models.Driver, error) {
	d, err := s.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.FindActiveRouteByDriver(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, errors.Wrapf(models.ErrConflict, "driver has active route %s", active.RouteCode)
	}

	now := s.now()
	ok, err := s.repo.UpdateDriverStatus(ctx, id, models.DriverStatusInactive, false, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(models.ErrNotFound, "driver %s", id)
	}
	d.Status = models.DriverStatusInactive
	d.IsActive = false
	d.UpdatedAt = now
	return d, nil
}

func (s *Service) RegisterVehicle(ctx context.Context, in models.VehicleCreateInput) (*models.Vehicle, error) {
	if !validators.LicensePlate(in.LicensePlate) {
		return nil, errors.Wrapf(models.ErrBadRequest, "invalid license plate %q", in.LicensePlate)
	}
	model := strings.TrimSpace(in.Model)
	if model == "" {
		return nil, errors.Wrap(models.ErrBadRequest, "model is required")
	}
	if in.LoadCapacityKg != nil && *in.LoadCapacityKg <= 0 {
		return nil, errors.Wrap(models.ErrBadRequest, "load capacity must be positive")
	}
	if in.VolumeCapacityM3 != nil && *in.VolumeCapacityM3 <= 0 {
		return nil, errors.Wrap(models.ErrBadRequest, "volume capacity must be positive")
	}
	var owner *string
	if in.OwnerDocument != nil && strings.TrimSpace(*in.OwnerDocument) != "" {
		if !validators.TaxDocument(*in.OwnerDocument) {
			return nil, errors.Wrap(models.ErrBadRequest, "owner document must be a valid cpf or cnpj")
		}
		doc := validators.Digits(*in.OwnerDocument)
		owner = &doc
	}

	now := s.now()
	v := &models.Vehicle{
		ID:               uuid.NewString(),
		LicensePlate:     validators.NormalizePlate(in.LicensePlate),
		Model:            model,
		Status:           models.VehicleStatusActive,
		LoadCapacityKg:   in.LoadCapacityKg,
		VolumeCapacityM3: in.VolumeCapacityM3,
		OwnerDocument:    owner,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	v, err := s.repo.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "vehicle %s", id)
	}
	return v, nil
}

func (s *Service) ListVehicles(ctx context.Context, limit, offset int) ([]*models.Vehicle, error) {
	limit, offset = page(limit, offset)
	return s.repo.ListVehicles(ctx, limit, offset)
}

// ChangeVehicleStatus moves a vehicle between fleet statuses. Statuses that
// make a vehicle unavailable are refused while it serves an active route.
func (s *Service) ChangeVehicleStatus(ctx context.Context, id, status string) (*models.Vehicle, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !models.ValidVehicleStatus(status) {
		return nil, errors.Wrapf(models.ErrBadRequest, "invalid vehicle status %q", status)
	}
	v, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Status == status {
		return v, nil
	}
	if models.VehicleUnavailable(status) {
		active, err := s.repo.FindActiveRouteByVehicle(ctx, id, "")
		if err != nil {
			return nil, err
		}
		if active != nil {
			return nil, errors.Wrapf(models.ErrConflict, "vehicle has active route %s", active.RouteCode)
		}
	}

	now := s.now()
	isActive := status != models.VehicleStatusInactive
	ok, err := s.repo.UpdateVehicleStatus(ctx, id, status, isActive, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(models.ErrNotFound, "vehicle %s", id)
	}
	v.Status = status
	v.IsActive = isActive
	v.UpdatedAt = now
	return v, nil
}

func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
