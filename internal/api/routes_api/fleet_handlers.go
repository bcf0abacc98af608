package routes_api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (a *API) createDriver(w http.ResponseWriter, r *http.Request) {
	var req driverRequest
	if !decode(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		fail(w, r, err)
		return
	}
	d, err := a.fleet.RegisterDriver(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/drivers/"+d.ID)
	writeJSON(w, r, http.StatusCreated, toDriverResponse(d))
}

func (a *API) listDrivers(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "limit and offset must be integers")
		return
	}
	ds, err := a.fleet.ListDrivers(r.Context(), limit, offset)
	if err != nil {
		fail(w, r, err)
		return
	}
	out := make([]driverResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, toDriverResponse(d))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (a *API) getDriver(w http.ResponseWriter, r *http.Request) {
	d, err := a.fleet.GetDriver(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toDriverResponse(d))
}

func (a *API) deactivateDriver(w http.ResponseWriter, r *http.Request) {
	d, err := a.fleet.DeactivateDriver(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toDriverResponse(d))
}

func (a *API) createVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := a.fleet.RegisterVehicle(r.Context(), req.toInput())
	if err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/vehicles/"+v.ID)
	writeJSON(w, r, http.StatusCreated, toVehicleResponse(v))
}

func (a *API) listVehicles(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "limit and offset must be integers")
		return
	}
	vs, err := a.fleet.ListVehicles(r.Context(), limit, offset)
	if err != nil {
		fail(w, r, err)
		return
	}
	out := make([]vehicleResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, toVehicleResponse(v))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (a *API) getVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := a.fleet.GetVehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toVehicleResponse(v))
}

func (a *API) changeVehicleStatus(w http.ResponseWriter, r *http.Request) {
	var req vehicleStatusRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := a.fleet.ChangeVehicleStatus(r.Context(), chi.URLParam(r, "id"), strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toVehicleResponse(v))
}
