package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type RouteStatus string

const (
	RouteStatusPlanned    RouteStatus = "PLANNED"
	RouteStatusInProgress RouteStatus = "IN_PROGRESS"
	RouteStatusPaused     RouteStatus = "PAUSED"
	RouteStatusCompleted  RouteStatus = "COMPLETED"
	RouteStatusCancelled  RouteStatus = "CANCELLED"
)

// ActiveRouteStatuses are the statuses that hold a driver and a vehicle.
var ActiveRouteStatuses = []RouteStatus{
	RouteStatusPlanned,
	RouteStatusInProgress,
	RouteStatusPaused,
}

// RouteTransitions is the route state flow as code. Final statuses have no entry.
var RouteTransitions = map[RouteStatus][]RouteStatus{
	RouteStatusPlanned:    {RouteStatusInProgress, RouteStatusCancelled},
	RouteStatusInProgress: {RouteStatusPaused, RouteStatusCompleted, RouteStatusCancelled},
	RouteStatusPaused:     {RouteStatusInProgress, RouteStatusCancelled},
}

func (s RouteStatus) Valid() bool {
	switch s {
	case RouteStatusPlanned, RouteStatusInProgress, RouteStatusPaused, RouteStatusCompleted, RouteStatusCancelled:
		return true
	}
	return false
}

func (s RouteStatus) IsFinal() bool {
	return s == RouteStatusCompleted || s == RouteStatusCancelled
}

func (s RouteStatus) IsActive() bool {
	for _, a := range ActiveRouteStatuses {
		if s == a {
			return true
		}
	}
	return false
}

func CanTransition(from, to RouteStatus) bool {
	next, ok := RouteTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

type RouteType string

const (
	RouteTypeUrban      RouteType = "URBAN"
	RouteTypeInterstate RouteType = "INTERSTATE"
	RouteTypeRural      RouteType = "RURAL"
	RouteTypeExpress    RouteType = "EXPRESS"
	RouteTypeLocal      RouteType = "LOCAL"
)

func (t RouteType) Valid() bool {
	switch t {
	case RouteTypeUrban, RouteTypeInterstate, RouteTypeRural, RouteTypeExpress, RouteTypeLocal:
		return true
	}
	return false
}

// DateLayout is the wire format of Route.PlannedDate.
const DateLayout = "2006-01-02"

type Route struct {
	ID          string
	RouteCode   string
	Name        string
	Description *string

	DriverID  string
	VehicleID string

	Status RouteStatus
	Type   RouteType

	// PlannedDate carries only the calendar day (UTC midnight).
	PlannedDate      time.Time
	PlannedStartTime *string // HH:MM
	PlannedEndTime   *string // HH:MM

	OriginAddress          *string
	OriginCoordinates      *string
	DestinationAddress     *string
	DestinationCoordinates *string

	EstimatedDistanceKm      *float64
	EstimatedDurationMinutes *int
	EstimatedCost            *float64

	ActualStartTime       *time.Time
	ActualEndTime         *time.Time
	ActualDistanceKm      *float64
	ActualDurationMinutes *int

	TotalLoadKg   *float64
	TotalVolumeM3 *float64

	CancellationReason *string
	CancelledAt        *time.Time

	Notes *string

	DelayNotifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	Stops []*RouteStop
}

func (r *Route) IsFinalStatus() bool { return r.Status.IsFinal() }

func (r *Route) CanBeEdited() bool { return r.Status == RouteStatusPlanned }

func (r *Route) CanBeStarted() bool { return r.Status == RouteStatusPlanned }

func (r *Route) CanBePaused() bool { return r.Status == RouteStatusInProgress }

func (r *Route) CanBeResumed() bool { return r.Status == RouteStatusPaused }

func (r *Route) CanBeCompleted() bool { return r.Status == RouteStatusInProgress }

func (r *Route) CanBeCancelled() bool { return CanTransition(r.Status, RouteStatusCancelled) }

func (r *Route) CanBeDeleted() bool { return r.Status != RouteStatusInProgress }

// ProgressPercentage is completed stops over total stops, 0..100 with 2 decimals.
func (r *Route) ProgressPercentage() float64 {
	if len(r.Stops) == 0 {
		return 0
	}
	done := 0
	for _, s := range r.Stops {
		if s.Status == StopStatusCompleted {
			done++
		}
	}
	return round2(float64(done) / float64(len(r.Stops)) * 100)
}

// CapacityUtilization is the route load over the vehicle max load, 0..100+.
func (r *Route) CapacityUtilization(vehicleMaxLoadKg *float64) float64 {
	if r.TotalLoadKg == nil || vehicleMaxLoadKg == nil || *vehicleMaxLoadKg <= 0 {
		return 0
	}
	return round2(*r.TotalLoadKg / *vehicleMaxLoadKg * 100)
}

// PlannedEnd is the planned date at the planned end time, or the end of the planned day.
func (r *Route) PlannedEnd() time.Time {
	day := time.Date(r.PlannedDate.Year(), r.PlannedDate.Month(), r.PlannedDate.Day(), 0, 0, 0, 0, time.UTC)
	if r.PlannedEndTime != nil {
		if m, ok := MinuteOfDay(*r.PlannedEndTime); ok {
			return day.Add(time.Duration(m) * time.Minute)
		}
	}
	return day.Add(24*time.Hour - time.Second)
}

func (r *Route) IsDelayed(now time.Time) bool {
	if r.IsFinalStatus() {
		return false
	}
	return now.UTC().After(r.PlannedEnd())
}

// MinuteOfDay parses HH:MM (or HH:MM:SS) into minutes since midnight.
func MinuteOfDay(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type RouteFilter struct {
	Status      *RouteStatus
	DriverID    *string
	VehicleID   *string
	PlannedDate *time.Time
	Limit       int
	Offset      int
}
