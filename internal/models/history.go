package models

import "time"

type HistoryEventType string

const (
	HistoryRouteCreated  HistoryEventType = "ROUTE_CREATED"
	HistoryRouteUpdated  HistoryEventType = "ROUTE_UPDATED"
	HistoryStatusChanged HistoryEventType = "STATUS_CHANGED"
	HistoryRouteDeleted  HistoryEventType = "ROUTE_DELETED"
	HistoryStopUpdated   HistoryEventType = "STOP_UPDATED"
)

type FieldChange struct {
	Field    string  `json:"field_name"`
	OldValue *string `json:"old_value"`
	NewValue *string `json:"new_value"`
}

// RouteHistory is written once and never updated.
type RouteHistory struct {
	ID             string
	RouteID        string
	EventType      HistoryEventType
	Description    string
	PreviousStatus *RouteStatus
	NewStatus      *RouteStatus
	Changes        []FieldChange

	UserID    *string
	UserName  *string
	UserType  *string
	RequestID *string
	IPAddress *string

	CreatedAt time.Time
}
