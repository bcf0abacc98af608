package routes

import (
	"context"

	"github.com/BearBump/RouteBox/internal/audit"
	"github.com/BearBump/RouteBox/internal/models"
)

// Mutation describes one persisted change to a route.
type Mutation struct {
	Event          models.HistoryEventType
	Route          *models.Route
	PreviousStatus models.RouteStatus
	History        *models.RouteHistory
	Actor          audit.Actor
}

// Hook is called around every route mutation.
//
// BeforeSave runs inside the transaction right before the write; an error
// aborts the whole operation. AfterSave runs after commit and cannot fail the
// operation, its error is only logged.
type Hook interface {
	BeforeSave(ctx context.Context, m Mutation) error
	AfterSave(ctx context.Context, m Mutation) error
}

// HookFuncs adapts plain functions to Hook. Nil funcs are no-ops.
type HookFuncs struct {
	Before func(ctx context.Context, m Mutation) error
	After  func(ctx context.Context, m Mutation) error
}

func (h HookFuncs) BeforeSave(ctx context.Context, m Mutation) error {
	if h.Before == nil {
		return nil
	}
	return h.Before(ctx, m)
}

func (h HookFuncs) AfterSave(ctx context.Context, m Mutation) error {
	if h.After == nil {
		return nil
	}
	return h.After(ctx, m)
}
