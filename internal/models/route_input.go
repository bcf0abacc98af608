package models

import "time"

type RouteCreateInput struct {
	// RouteCode is generated as RT-YYYYMMDD-NNN when empty.
	RouteCode   *string
	Name        string
	Description *string

	DriverID  string
	VehicleID string
	Type      RouteType

	PlannedDate      time.Time
	PlannedStartTime *string
	PlannedEndTime   *string

	OriginAddress          *string
	OriginCoordinates      *string
	DestinationAddress     *string
	DestinationCoordinates *string

	// Explicit estimates win over the computed ones.
	EstimatedDistanceKm      *float64
	EstimatedDurationMinutes *int

	TotalLoadKg   *float64
	TotalVolumeM3 *float64

	Notes *string

	Stops []RouteStopInput
}

// RouteUpdateInput is a partial update; nil fields are left untouched.
// A non-nil empty Stops clears the stops.
type RouteUpdateInput struct {
	RouteCode   *string
	Name        *string
	Description *string

	DriverID  *string
	VehicleID *string
	Type      *RouteType

	PlannedDate      *time.Time
	PlannedStartTime *string
	PlannedEndTime   *string

	OriginAddress          *string
	OriginCoordinates      *string
	DestinationAddress     *string
	DestinationCoordinates *string

	EstimatedDistanceKm      *float64
	EstimatedDurationMinutes *int

	TotalLoadKg   *float64
	TotalVolumeM3 *float64

	Notes *string

	Stops []RouteStopInput
}

// StopUpdateInput is a progress report for one stop, usually from a driver device.
type StopUpdateInput struct {
	RouteID             string
	StopID              string
	Status              string
	ActualArrivalTime   *time.Time
	ActualDepartureTime *time.Time
	Notes               *string
	ReportedAt          time.Time
}
