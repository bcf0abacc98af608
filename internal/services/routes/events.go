package routes

import (
	"context"
	"encoding/json"

	"github.com/BearBump/RouteBox/internal/broker/messages"
	"github.com/pkg/errors"
)

// Publisher is satisfied by kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// EventHook publishes a RouteEvent after each committed mutation.
type EventHook struct {
	pub   Publisher
	topic string
}

func NewEventHook(pub Publisher, topic string) *EventHook {
	if topic == "" {
		topic = messages.TopicRouteEvents
	}
	return &EventHook{pub: pub, topic: topic}
}

func (h *EventHook) BeforeSave(context.Context, Mutation) error { return nil }

func (h *EventHook) AfterSave(ctx context.Context, m Mutation) error {
	evt := messages.RouteEvent{
		RouteID:        m.Route.ID,
		RouteCode:      m.Route.RouteCode,
		EventType:      string(m.Event),
		PreviousStatus: string(m.PreviousStatus),
		NewStatus:      string(m.Route.Status),
		DriverID:       m.Route.DriverID,
		VehicleID:      m.Route.VehicleID,
		OccurredAt:     m.Actor.At,
		ActorID:        m.Actor.UserID,
		RequestID:      m.Actor.RequestID,
	}
	if m.History != nil {
		evt.OccurredAt = m.History.CreatedAt
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return errors.Wrap(err, "marshal route event")
	}
	return h.pub.Publish(ctx, h.topic, []byte(m.Route.ID), b)
}
