package models

import "time"

const (
	StopStatusPending    = "PENDING"
	StopStatusInProgress = "IN_PROGRESS"
	StopStatusCompleted  = "COMPLETED"
	StopStatusSkipped    = "SKIPPED"
	StopStatusFailed     = "FAILED"
)

const (
	DeliveryTypeDelivery = "DELIVERY"
	DeliveryTypePickup   = "PICKUP"
	DeliveryTypeBoth     = "BOTH"
)

func ValidStopStatus(s string) bool {
	switch s {
	case StopStatusPending, StopStatusInProgress, StopStatusCompleted, StopStatusSkipped, StopStatusFailed:
		return true
	}
	return false
}

func ValidDeliveryType(s string) bool {
	switch s {
	case DeliveryTypeDelivery, DeliveryTypePickup, DeliveryTypeBoth:
		return true
	}
	return false
}

type RouteStop struct {
	ID                string
	RouteID           string
	CustomerAddressID string
	Address           *string
	Coordinates       *string
	SequenceOrder     int
	Status            string
	DeliveryType      string

	PlannedArrivalTime   *time.Time
	PlannedDepartureTime *time.Time
	ActualArrivalTime    *time.Time
	ActualDepartureTime  *time.Time

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RouteStopInput struct {
	CustomerAddressID    string
	Address              *string
	Coordinates          *string
	SequenceOrder        int
	DeliveryType         string
	PlannedArrivalTime   *time.Time
	PlannedDepartureTime *time.Time
	Notes                *string
}
