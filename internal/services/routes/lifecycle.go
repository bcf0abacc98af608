package routes

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/BearBump/RouteBox/internal/audit"
	"github.com/BearBump/RouteBox/internal/models"
	"github.com/pkg/errors"
)

const minCancelReasonLen = 3

func (s *Service) Start(ctx context.Context, id string, actor audit.Actor) (*models.Route, error) {
	return s.transition(ctx, id, models.RouteStatusInProgress, (*models.Route).CanBeStarted, actor, func(r *models.Route, now time.Time) string {
		if r.ActualStartTime == nil {
			r.ActualStartTime = &now
		}
		return fmt.Sprintf("Route %s started", r.RouteCode)
	})
}

func (s *Service) Pause(ctx context.Context, id, reason string, actor audit.Actor) (*models.Route, error) {
	return s.transition(ctx, id, models.RouteStatusPaused, (*models.Route).CanBePaused, actor, func(r *models.Route, _ time.Time) string {
		if reason = strings.TrimSpace(reason); reason != "" {
			return fmt.Sprintf("Route %s paused: %s", r.RouteCode, reason)
		}
		return fmt.Sprintf("Route %s paused", r.RouteCode)
	})
}

func (s *Service) Resume(ctx context.Context, id string, actor audit.Actor) (*models.Route, error) {
	return s.transition(ctx, id, models.RouteStatusInProgress, (*models.Route).CanBeResumed, actor, func(r *models.Route, _ time.Time) string {
		return fmt.Sprintf("Route %s resumed", r.RouteCode)
	})
}

// Complete closes the route. The actual duration is the wall-clock time since
// the route first started; actualDistanceKm is optional.
func (s *Service) Complete(ctx context.Context, id string, actualDistanceKm *float64, actor audit.Actor) (*models.Route, error) {
	if actualDistanceKm != nil && *actualDistanceKm < 0 {
		return nil, errors.Wrap(models.ErrBadRequest, "actual distance must not be negative")
	}
	return s.transition(ctx, id, models.RouteStatusCompleted, (*models.Route).CanBeCompleted, actor, func(r *models.Route, now time.Time) string {
		r.ActualEndTime = &now
		if r.ActualStartTime != nil {
			mins := int(math.Round(now.Sub(*r.ActualStartTime).Minutes()))
			r.ActualDurationMinutes = &mins
		}
		if actualDistanceKm != nil {
			r.ActualDistanceKm = actualDistanceKm
		}
		return fmt.Sprintf("Route %s completed", r.RouteCode)
	})
}

func (s *Service) Cancel(ctx context.Context, id, reason string, actor audit.Actor) (*models.Route, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errors.Wrap(models.ErrBadRequest, "cancellation reason is required")
	}
	if len([]rune(reason)) < minCancelReasonLen {
		return nil, errors.Wrapf(models.ErrBadRequest, "cancellation reason must have at least %d characters", minCancelReasonLen)
	}
	return s.transition(ctx, id, models.RouteStatusCancelled, (*models.Route).CanBeCancelled, actor, func(r *models.Route, now time.Time) string {
		r.CancellationReason = &reason
		r.CancelledAt = &now
		return fmt.Sprintf("Route %s cancelled: %s", r.RouteCode, reason)
	})
}

// transition moves a route to status to, applying mutate to the loaded route.
// The write is conditional on the status read inside the transaction. allowed
// is the entity predicate of the operation; it is stricter than the table for
// the two ways into IN_PROGRESS.
func (s *Service) transition(
	ctx context.Context,
	id string,
	to models.RouteStatus,
	allowed func(*models.Route) bool,
	actor audit.Actor,
	mutate func(r *models.Route, now time.Time) string,
) (*models.Route, error) {
	now := s.now().UTC()
	var (
		r *models.Route
		m Mutation
	)
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		cur, err := s.getRoute(ctx, id)
		if err != nil {
			return err
		}
		if err := s.validator.ValidateStatusTransition(cur.Status, to); err != nil {
			return errors.Wrapf(err, "route %s", cur.RouteCode)
		}
		if !allowed(cur) {
			return errors.Wrapf(ErrInvalidTransition, "route %s: %s -> %s", cur.RouteCode, cur.Status, to)
		}

		from := cur.Status
		r = cloneRoute(cur)
		desc := mutate(r, now)
		r.Status = to
		r.UpdatedAt = now

		h := s.newHistory(r, models.HistoryStatusChanged, actor, now)
		h.Description = desc
		h.PreviousStatus = statusPtr(from)
		h.NewStatus = statusPtr(to)
		m = Mutation{Event: models.HistoryStatusChanged, Route: r, PreviousStatus: from, History: h, Actor: actor}

		if err := s.beforeSave(ctx, m); err != nil {
			return err
		}
		ok, err := s.repo.UpdateRouteStatus(ctx, r, from)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(models.ErrConflict, "route %s changed status concurrently", cur.RouteCode)
		}
		return s.repo.AppendHistory(ctx, h)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("route status changed", "route_id", r.ID, "from", m.PreviousStatus, "to", r.Status)
	s.afterSave(ctx, m)
	return r, nil
}

// ApplyStopUpdate records a stop progress report. Only running or paused
// routes accept reports.
func (s *Service) ApplyStopUpdate(ctx context.Context, in models.StopUpdateInput, actor audit.Actor) (*models.RouteStop, error) {
	if in.RouteID == "" || in.StopID == "" {
		return nil, errors.Wrap(models.ErrBadRequest, "route_id and stop_id are required")
	}
	if !models.ValidStopStatus(in.Status) {
		return nil, errors.Wrapf(models.ErrBadRequest, "unknown stop status %q", in.Status)
	}
	if in.ActualArrivalTime != nil && in.ActualDepartureTime != nil && in.ActualDepartureTime.Before(*in.ActualArrivalTime) {
		return nil, errors.Wrap(models.ErrBadRequest, "departure must not precede arrival")
	}

	now := s.now().UTC()
	var (
		stop *models.RouteStop
		m    Mutation
	)
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		r, err := s.getRoute(ctx, in.RouteID)
		if err != nil {
			return err
		}
		if r.Status != models.RouteStatusInProgress && r.Status != models.RouteStatusPaused {
			return errors.Wrapf(models.ErrBadRequest, "route %s does not accept stop updates while %s", r.RouteCode, r.Status)
		}

		var cur *models.RouteStop
		for _, st := range r.Stops {
			if st.ID == in.StopID {
				cur = st
				break
			}
		}
		if cur == nil {
			return errors.Wrapf(models.ErrNotFound, "stop %s on route %s", in.StopID, r.RouteCode)
		}

		next := *cur
		next.Status = in.Status
		if in.ActualArrivalTime != nil {
			next.ActualArrivalTime = in.ActualArrivalTime
		}
		if in.ActualDepartureTime != nil {
			next.ActualDepartureTime = in.ActualDepartureTime
		}
		if in.Notes != nil {
			next.Notes = blankToNil(in.Notes)
		}
		next.UpdatedAt = now

		prefix := fmt.Sprintf("stop.%d.", cur.SequenceOrder)
		changes := s.differ.Diff(stopSnapshot(prefix, cur), stopSnapshot(prefix, &next))
		if len(changes) == 0 {
			stop = cur
			return nil
		}

		h := s.newHistory(r, models.HistoryStopUpdated, actor, now)
		h.Description = fmt.Sprintf("Stop %d of route %s is %s", cur.SequenceOrder, r.RouteCode, next.Status)
		h.Changes = changes

		for i, st := range r.Stops {
			if st.ID == next.ID {
				r.Stops[i] = &next
			}
		}
		m = Mutation{Event: models.HistoryStopUpdated, Route: r, PreviousStatus: r.Status, History: h, Actor: actor}
		if err := s.beforeSave(ctx, m); err != nil {
			return err
		}
		if err := s.repo.UpdateStop(ctx, &next); err != nil {
			return err
		}
		if err := s.repo.AppendHistory(ctx, h); err != nil {
			return err
		}
		stop = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	if m.Route != nil {
		s.afterSave(ctx, m)
	}
	return stop, nil
}

func stopSnapshot(prefix string, st *models.RouteStop) map[string]*string {
	return map[string]*string{
		prefix + "status":                str(st.Status),
		prefix + "actual_arrival_time":   timeStr(st.ActualArrivalTime),
		prefix + "actual_departure_time": timeStr(st.ActualDepartureTime),
		prefix + "notes":                 st.Notes,
	}
}
