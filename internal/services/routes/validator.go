package routes

import (
	"context"
	"time"

	"github.com/BearBump/RouteBox/internal/models"
	"github.com/pkg/errors"
)

// Validator gates every route mutation before it is persisted.
type Validator struct {
	repo Lookup
	now  func() time.Time
}

func NewValidator(repo Lookup, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{repo: repo, now: now}
}

// ValidateDriverAssignment rejects a driver that already holds an active route.
// Exclusivity does not depend on plannedDate: one active route per driver, period.
func (v *Validator) ValidateDriverAssignment(ctx context.Context, driverID string, plannedDate time.Time, excludeRouteID string) error {
	r, err := v.repo.FindActiveRouteByDriver(ctx, driverID, excludeRouteID)
	if err != nil {
		return err
	}
	if r != nil {
		return errors.Wrapf(models.ErrConflict, "driver %s already has active route %s (%s, planned %s; requested %s)",
			driverID, r.RouteCode, r.Status, r.PlannedDate.Format(models.DateLayout), plannedDate.Format(models.DateLayout))
	}
	return nil
}

// ValidateVehicleAssignment applies the same exclusivity as drivers and also
// rejects vehicles that cannot run.
func (v *Validator) ValidateVehicleAssignment(ctx context.Context, vehicleID string, plannedDate time.Time, excludeRouteID string) error {
	veh, err := v.repo.GetVehicle(ctx, vehicleID)
	if err != nil {
		return err
	}
	if veh != nil && models.VehicleUnavailable(veh.Status) {
		return errors.Wrapf(models.ErrBadRequest, "vehicle %s is %s", veh.LicensePlate, veh.Status)
	}

	r, err := v.repo.FindActiveRouteByVehicle(ctx, vehicleID, excludeRouteID)
	if err != nil {
		return err
	}
	if r != nil {
		return errors.Wrapf(models.ErrConflict, "vehicle %s already assigned to active route %s (%s, planned %s; requested %s)",
			vehicleID, r.RouteCode, r.Status, r.PlannedDate.Format(models.DateLayout), plannedDate.Format(models.DateLayout))
	}
	return nil
}

func (v *Validator) ValidateDriverExists(ctx context.Context, driverID string) (*models.Driver, error) {
	d, err := v.repo.GetDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "driver %s", driverID)
	}
	if !d.IsActive || d.Status == models.DriverStatusInactive {
		return nil, errors.Wrapf(models.ErrBadRequest, "driver %s is inactive", driverID)
	}
	return d, nil
}

func (v *Validator) ValidateVehicleExists(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	veh, err := v.repo.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if veh == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "vehicle %s", vehicleID)
	}
	if !veh.IsActive {
		return nil, errors.Wrapf(models.ErrBadRequest, "vehicle %s is inactive", vehicleID)
	}
	return veh, nil
}

func (v *Validator) ValidateUniqueRouteCode(ctx context.Context, code, excludeRouteID string) error {
	exists, err := v.repo.RouteCodeExists(ctx, code, excludeRouteID)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(models.ErrConflict, "route code %s already in use", code)
	}
	return nil
}

// ValidateRouteDates compares calendar days only, and end must strictly follow
// start within the same day.
func (v *Validator) ValidateRouteDates(plannedDate time.Time, startTime, endTime *string) error {
	if plannedDate.IsZero() {
		return errors.Wrap(models.ErrBadRequest, "planned date is required")
	}
	today := dateOnly(v.now())
	if dateOnly(plannedDate).Before(today) {
		return errors.Wrapf(models.ErrBadRequest, "planned date %s is in the past", plannedDate.Format(models.DateLayout))
	}

	var startMin, endMin int
	var ok bool
	if startTime != nil {
		if startMin, ok = models.MinuteOfDay(*startTime); !ok {
			return errors.Wrapf(models.ErrBadRequest, "invalid start time %q", *startTime)
		}
	}
	if endTime != nil {
		if endMin, ok = models.MinuteOfDay(*endTime); !ok {
			return errors.Wrapf(models.ErrBadRequest, "invalid end time %q", *endTime)
		}
	}
	if startTime != nil && endTime != nil && endMin <= startMin {
		return errors.Wrapf(models.ErrBadRequest, "end time %s must be after start time %s", *endTime, *startTime)
	}
	return nil
}

func (v *Validator) ValidateRouteCapacity(ctx context.Context, vehicleID string, totalLoadKg, totalVolumeM3 *float64) error {
	if totalLoadKg == nil && totalVolumeM3 == nil {
		return nil
	}
	veh, err := v.repo.GetVehicle(ctx, vehicleID)
	if err != nil {
		return err
	}
	if veh == nil {
		return errors.Wrapf(models.ErrNotFound, "vehicle %s", vehicleID)
	}
	if totalLoadKg != nil {
		if *totalLoadKg < 0 {
			return errors.Wrap(models.ErrBadRequest, "total load must not be negative")
		}
		if veh.LoadCapacityKg != nil && *totalLoadKg > *veh.LoadCapacityKg {
			return errors.Wrapf(models.ErrBadRequest, "total load %.2f kg exceeds vehicle capacity %.2f kg", *totalLoadKg, *veh.LoadCapacityKg)
		}
	}
	if totalVolumeM3 != nil {
		if *totalVolumeM3 < 0 {
			return errors.Wrap(models.ErrBadRequest, "total volume must not be negative")
		}
		if veh.VolumeCapacityM3 != nil && *totalVolumeM3 > *veh.VolumeCapacityM3 {
			return errors.Wrapf(models.ErrBadRequest, "total volume %.2f m3 exceeds vehicle capacity %.2f m3", *totalVolumeM3, *veh.VolumeCapacityM3)
		}
	}
	return nil
}

func (v *Validator) ValidateStatusTransition(current, next models.RouteStatus) error {
	if !models.CanTransition(current, next) {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", current, next)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
