package messages

import "time"

const (
	TopicRouteEvents  = "route.events"
	TopicStopUpdates  = "route.stop_updates"
	TopicRouteDelayed = "route.delayed"
)

// RouteEvent is published after every committed route mutation, keyed by route id.
type RouteEvent struct {
	RouteID        string    `json:"route_id"`
	RouteCode      string    `json:"route_code"`
	EventType      string    `json:"event_type"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	NewStatus      string    `json:"new_status"`
	DriverID       string    `json:"driver_id"`
	VehicleID      string    `json:"vehicle_id"`
	OccurredAt     time.Time `json:"occurred_at"`
	ActorID        string    `json:"actor_id,omitempty"`
	RequestID      string    `json:"request_id,omitempty"`
}

// StopUpdated is sent by driver devices when they arrive at or leave a stop.
type StopUpdated struct {
	RouteID             string     `json:"route_id"`
	StopID              string     `json:"stop_id"`
	Status              string     `json:"status"`
	ActualArrivalTime   *time.Time `json:"actual_arrival_time,omitempty"`
	ActualDepartureTime *time.Time `json:"actual_departure_time,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	DeviceID            string     `json:"device_id,omitempty"`
	ReportedAt          time.Time  `json:"reported_at"`
}

// RouteDelayed is published once per route when it runs past its planned end.
type RouteDelayed struct {
	RouteID        string    `json:"route_id"`
	RouteCode      string    `json:"route_code"`
	DriverID       string    `json:"driver_id"`
	VehicleID      string    `json:"vehicle_id"`
	Status         string    `json:"status"`
	PlannedDate    string    `json:"planned_date"`
	PlannedEndTime *string   `json:"planned_end_time,omitempty"`
	DetectedAt     time.Time `json:"detected_at"`
}
