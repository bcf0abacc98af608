package routes_api

import (
	"net/http"
	"strings"
	"time"

	"github.com/BearBump/RouteBox/internal/models"
	"github.com/go-chi/chi/v5"
)

func (a *API) createRoute(w http.ResponseWriter, r *http.Request) {
	var req createRouteRequest
	if !decode(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		fail(w, r, err)
		return
	}
	out, err := a.routes.Create(r.Context(), in, actorFrom(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/routes/"+out.ID)
	writeJSON(w, r, http.StatusCreated, toRouteResponse(out))
}

func (a *API) listRoutes(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "limit and offset must be integers")
		return
	}
	f := models.RouteFilter{Limit: limit, Offset: offset}

	q := r.URL.Query()
	if s := q.Get("status"); s != "" {
		st := models.RouteStatus(strings.ToUpper(s))
		f.Status = &st
	}
	if s := q.Get("driverId"); s != "" {
		f.DriverID = &s
	}
	if s := q.Get("vehicleId"); s != "" {
		f.VehicleID = &s
	}
	if s := q.Get("date"); s != "" {
		d, err := parseDate("date", s)
		if err != nil {
			fail(w, r, err)
			return
		}
		f.PlannedDate = &d
	}

	out, err := a.routes.List(r.Context(), f)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toRouteResponses(out))
}

func (a *API) estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if !decode(w, r, &req) {
		return
	}
	est, err := a.routes.Estimate(routeType(req.Type), req.Points)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, estimateResponse{
		DistanceKm:      est.DistanceKm,
		DurationMinutes: est.DurationMinutes,
		Cost:            est.Cost,
	})
}

func (a *API) getRoute(w http.ResponseWriter, r *http.Request) {
	v, err := a.routes.GetView(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toRouteViewResponse(v))
}

func (a *API) updateRoute(w http.ResponseWriter, r *http.Request) {
	var req updateRouteRequest
	if !decode(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		fail(w, r, err)
		return
	}
	out, err := a.routes.Update(r.Context(), chi.URLParam(r, "id"), in, actorFrom(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toRouteResponse(out))
}

func (a *API) removeRoute(w http.ResponseWriter, r *http.Request) {
	if err := a.routes.Remove(r.Context(), chi.URLParam(r, "id"), actorFrom(r)); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listHistory(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "limit and offset must be integers")
		return
	}
	out, err := a.routes.ListHistory(r.Context(), chi.URLParam(r, "id"), limit, offset)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toHistoryResponses(out))
}

func (a *API) startRoute(w http.ResponseWriter, r *http.Request) {
	a.respondRoute(w, r)(a.routes.Start(r.Context(), chi.URLParam(r, "id"), actorFrom(r)))
}

func (a *API) pauseRoute(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	a.respondRoute(w, r)(a.routes.Pause(r.Context(), chi.URLParam(r, "id"), req.Reason, actorFrom(r)))
}

func (a *API) resumeRoute(w http.ResponseWriter, r *http.Request) {
	a.respondRoute(w, r)(a.routes.Resume(r.Context(), chi.URLParam(r, "id"), actorFrom(r)))
}

func (a *API) completeRoute(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	a.respondRoute(w, r)(a.routes.Complete(r.Context(), chi.URLParam(r, "id"), req.ActualDistanceKm, actorFrom(r)))
}

func (a *API) cancelRoute(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if !decode(w, r, &req) {
		return
	}
	a.respondRoute(w, r)(a.routes.Cancel(r.Context(), chi.URLParam(r, "id"), req.Reason, actorFrom(r)))
}

func (a *API) updateStop(w http.ResponseWriter, r *http.Request) {
	var req stopUpdateRequest
	if !decode(w, r, &req) {
		return
	}
	in := models.StopUpdateInput{
		RouteID:             chi.URLParam(r, "id"),
		StopID:              chi.URLParam(r, "stopId"),
		Status:              strings.ToUpper(req.Status),
		ActualArrivalTime:   req.ActualArrivalTime,
		ActualDepartureTime: req.ActualDepartureTime,
		Notes:               req.Notes,
		ReportedAt:          time.Now().UTC(),
	}
	st, err := a.routes.ApplyStopUpdate(r.Context(), in, actorFrom(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toStopResponse(st))
}

// respondRoute writes the outcome of a lifecycle call.
func (a *API) respondRoute(w http.ResponseWriter, r *http.Request) func(*models.Route, error) {
	return func(out *models.Route, err error) {
		if err != nil {
			fail(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toRouteResponse(out))
	}
}
