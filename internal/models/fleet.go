package models

import "time"

const (
	DriverStatusAvailable = "AVAILABLE"
	DriverStatusOnRoute   = "ON_ROUTE"
	DriverStatusOffDuty   = "OFF_DUTY"
	DriverStatusInactive  = "INACTIVE"
)

type Driver struct {
	ID              string
	Name            string
	CPF             string
	LicenseNumber   string
	LicenseCategory string
	LicenseExpiry   *time.Time
	Phone           *string
	Status          string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type DriverCreateInput struct {
	Name            string
	CPF             string
	LicenseNumber   string
	LicenseCategory string
	LicenseExpiry   *time.Time
	Phone           *string
}

const (
	VehicleStatusActive       = "ACTIVE"
	VehicleStatusInUse        = "IN_USE"
	VehicleStatusMaintenance  = "MAINTENANCE"
	VehicleStatusInactive     = "INACTIVE"
	VehicleStatusOutOfService = "OUT_OF_SERVICE"
)

func ValidVehicleStatus(s string) bool {
	switch s {
	case VehicleStatusActive, VehicleStatusInUse, VehicleStatusMaintenance, VehicleStatusInactive, VehicleStatusOutOfService:
		return true
	}
	return false
}

// VehicleUnavailable reports statuses that can never take a route.
func VehicleUnavailable(status string) bool {
	switch status {
	case VehicleStatusMaintenance, VehicleStatusInactive, VehicleStatusOutOfService:
		return true
	}
	return false
}

type Vehicle struct {
	ID               string
	LicensePlate     string
	Model            string
	Status           string
	LoadCapacityKg   *float64
	VolumeCapacityM3 *float64
	OwnerDocument    *string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type VehicleCreateInput struct {
	LicensePlate     string
	Model            string
	LoadCapacityKg   *float64
	VolumeCapacityM3 *float64
	OwnerDocument    *string
}
