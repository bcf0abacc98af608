package routes_api

import (
	"strings"
	"time"

	"github.com/BearBump/RouteBox/internal/models"
	"github.com/BearBump/RouteBox/internal/services/routes"
	"github.com/pkg/errors"
)

type stopRequest struct {
	CustomerAddressID    string     `json:"customerAddressId"`
	Address              *string    `json:"address,omitempty"`
	Coordinates          *string    `json:"coordinates,omitempty"`
	SequenceOrder        int        `json:"sequenceOrder"`
	DeliveryType         string     `json:"deliveryType,omitempty"`
	PlannedArrivalTime   *time.Time `json:"plannedArrivalTime,omitempty"`
	PlannedDepartureTime *time.Time `json:"plannedDepartureTime,omitempty"`
	Notes                *string    `json:"notes,omitempty"`
}

type createRouteRequest struct {
	RouteCode   *string `json:"routeCode,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	DriverID  string `json:"driverId"`
	VehicleID string `json:"vehicleId"`
	Type      string `json:"type,omitempty"`

	PlannedDate      string  `json:"plannedDate"`
	PlannedStartTime *string `json:"plannedStartTime,omitempty"`
	PlannedEndTime   *string `json:"plannedEndTime,omitempty"`

	OriginAddress          *string `json:"originAddress,omitempty"`
	OriginCoordinates      *string `json:"originCoordinates,omitempty"`
	DestinationAddress     *string `json:"destinationAddress,omitempty"`
	DestinationCoordinates *string `json:"destinationCoordinates,omitempty"`

	EstimatedDistanceKm      *float64 `json:"estimatedDistanceKm,omitempty"`
	EstimatedDurationMinutes *int     `json:"estimatedDurationMinutes,omitempty"`

	TotalLoadKg   *float64 `json:"totalLoadKg,omitempty"`
	TotalVolumeM3 *float64 `json:"totalVolumeM3,omitempty"`

	Notes *string `json:"notes,omitempty"`

	Stops []stopRequest `json:"stops,omitempty"`
}

// updateRouteRequest is a partial update. Stops distinguishes absent from [].
type updateRouteRequest struct {
	RouteCode   *string `json:"routeCode,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`

	DriverID  *string `json:"driverId,omitempty"`
	VehicleID *string `json:"vehicleId,omitempty"`
	Type      *string `json:"type,omitempty"`

	PlannedDate      *string `json:"plannedDate,omitempty"`
	PlannedStartTime *string `json:"plannedStartTime,omitempty"`
	PlannedEndTime   *string `json:"plannedEndTime,omitempty"`

	OriginAddress          *string `json:"originAddress,omitempty"`
	OriginCoordinates      *string `json:"originCoordinates,omitempty"`
	DestinationAddress     *string `json:"destinationAddress,omitempty"`
	DestinationCoordinates *string `json:"destinationCoordinates,omitempty"`

	EstimatedDistanceKm      *float64 `json:"estimatedDistanceKm,omitempty"`
	EstimatedDurationMinutes *int     `json:"estimatedDurationMinutes,omitempty"`

	TotalLoadKg   *float64 `json:"totalLoadKg,omitempty"`
	TotalVolumeM3 *float64 `json:"totalVolumeM3,omitempty"`

	Notes *string `json:"notes,omitempty"`

	Stops *[]stopRequest `json:"stops,omitempty"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type completeRequest struct {
	ActualDistanceKm *float64 `json:"actualDistanceKm,omitempty"`
}

type stopUpdateRequest struct {
	Status              string     `json:"status"`
	ActualArrivalTime   *time.Time `json:"actualArrivalTime,omitempty"`
	ActualDepartureTime *time.Time `json:"actualDepartureTime,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
}

type estimateRequest struct {
	Type   string   `json:"type,omitempty"`
	Points []string `json:"points"`
}

type estimateResponse struct {
	DistanceKm      float64 `json:"distanceKm"`
	DurationMinutes int     `json:"durationMinutes"`
	Cost            float64 `json:"cost"`
}

type driverRequest struct {
	Name            string  `json:"name"`
	CPF             string  `json:"cpf"`
	LicenseNumber   string  `json:"licenseNumber"`
	LicenseCategory string  `json:"licenseCategory"`
	LicenseExpiry   *string `json:"licenseExpiry,omitempty"`
	Phone           *string `json:"phone,omitempty"`
}

type vehicleRequest struct {
	LicensePlate     string   `json:"licensePlate"`
	Model            string   `json:"model"`
	LoadCapacityKg   *float64 `json:"loadCapacityKg,omitempty"`
	VolumeCapacityM3 *float64 `json:"volumeCapacityM3,omitempty"`
	OwnerDocument    *string  `json:"ownerDocument,omitempty"`
}

type vehicleStatusRequest struct {
	Status string `json:"status"`
}

type stopResponse struct {
	ID                   string     `json:"id"`
	CustomerAddressID    string     `json:"customerAddressId"`
	Address              *string    `json:"address,omitempty"`
	Coordinates          *string    `json:"coordinates,omitempty"`
	SequenceOrder        int        `json:"sequenceOrder"`
	Status               string     `json:"status"`
	DeliveryType         string     `json:"deliveryType"`
	PlannedArrivalTime   *time.Time `json:"plannedArrivalTime,omitempty"`
	PlannedDepartureTime *time.Time `json:"plannedDepartureTime,omitempty"`
	ActualArrivalTime    *time.Time `json:"actualArrivalTime,omitempty"`
	ActualDepartureTime  *time.Time `json:"actualDepartureTime,omitempty"`
	Notes                *string    `json:"notes,omitempty"`
}

type routeResponse struct {
	ID          string  `json:"id"`
	RouteCode   string  `json:"routeCode"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	DriverID    string  `json:"driverId"`
	VehicleID   string  `json:"vehicleId"`
	Status      string  `json:"status"`
	Type        string  `json:"type"`

	PlannedDate      string  `json:"plannedDate"`
	PlannedStartTime *string `json:"plannedStartTime,omitempty"`
	PlannedEndTime   *string `json:"plannedEndTime,omitempty"`

	OriginAddress          *string `json:"originAddress,omitempty"`
	OriginCoordinates      *string `json:"originCoordinates,omitempty"`
	DestinationAddress     *string `json:"destinationAddress,omitempty"`
	DestinationCoordinates *string `json:"destinationCoordinates,omitempty"`

	EstimatedDistanceKm      *float64 `json:"estimatedDistanceKm,omitempty"`
	EstimatedDurationMinutes *int     `json:"estimatedDurationMinutes,omitempty"`
	EstimatedCost            *float64 `json:"estimatedCost,omitempty"`

	ActualStartTime       *time.Time `json:"actualStartTime,omitempty"`
	ActualEndTime         *time.Time `json:"actualEndTime,omitempty"`
	ActualDistanceKm      *float64   `json:"actualDistanceKm,omitempty"`
	ActualDurationMinutes *int       `json:"actualDurationMinutes,omitempty"`

	TotalLoadKg   *float64 `json:"totalLoadKg,omitempty"`
	TotalVolumeM3 *float64 `json:"totalVolumeM3,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	Notes              *string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Stops []stopResponse `json:"stops"`

	ProgressPercentage  *float64 `json:"progressPercentage,omitempty"`
	CapacityUtilization *float64 `json:"capacityUtilization,omitempty"`
	IsDelayed           *bool    `json:"isDelayed,omitempty"`
}

type historyResponse struct {
	ID             string               `json:"id"`
	RouteID        string               `json:"routeId"`
	EventType      string               `json:"eventType"`
	Description    string               `json:"description"`
	PreviousStatus *string              `json:"previousStatus,omitempty"`
	NewStatus      *string              `json:"newStatus,omitempty"`
	Changes        []models.FieldChange `json:"changes,omitempty"`
	UserID         *string              `json:"userId,omitempty"`
	UserName       *string              `json:"userName,omitempty"`
	UserType       *string              `json:"userType,omitempty"`
	RequestID      *string              `json:"requestId,omitempty"`
	IPAddress      *string              `json:"ipAddress,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

type driverResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	CPF             string    `json:"cpf"`
	LicenseNumber   string    `json:"licenseNumber"`
	LicenseCategory string    `json:"licenseCategory"`
	LicenseExpiry   *string   `json:"licenseExpiry,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	Status          string    `json:"status"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type vehicleResponse struct {
	ID               string    `json:"id"`
	LicensePlate     string    `json:"licensePlate"`
	Model            string    `json:"model"`
	Status           string    `json:"status"`
	LoadCapacityKg   *float64  `json:"loadCapacityKg,omitempty"`
	VolumeCapacityM3 *float64  `json:"volumeCapacityM3,omitempty"`
	OwnerDocument    *string   `json:"ownerDocument,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.Wrapf(models.ErrBadRequest, "%s must be YYYY-MM-DD", field)
	}
	return t, nil
}

func routeType(s string) models.RouteType {
	return models.RouteType(strings.ToUpper(strings.TrimSpace(s)))
}

func toStopInputs(in []stopRequest) []models.RouteStopInput {
	out := make([]models.RouteStopInput, 0, len(in))
	for _, s := range in {
		out = append(out, models.RouteStopInput{
			CustomerAddressID:    s.CustomerAddressID,
			Address:              s.Address,
			Coordinates:          s.Coordinates,
			SequenceOrder:        s.SequenceOrder,
			DeliveryType:         strings.ToUpper(s.DeliveryType),
			PlannedArrivalTime:   s.PlannedArrivalTime,
			PlannedDepartureTime: s.PlannedDepartureTime,
			Notes:                s.Notes,
		})
	}
	return out
}

func (req createRouteRequest) toInput() (models.RouteCreateInput, error) {
	date, err := parseDate("plannedDate", req.PlannedDate)
	if err != nil {
		return models.RouteCreateInput{}, err
	}
	return models.RouteCreateInput{
		RouteCode:                req.RouteCode,
		Name:                     req.Name,
		Description:              req.Description,
		DriverID:                 req.DriverID,
		VehicleID:                req.VehicleID,
		Type:                     routeType(req.Type),
		PlannedDate:              date,
		PlannedStartTime:         req.PlannedStartTime,
		PlannedEndTime:           req.PlannedEndTime,
		OriginAddress:            req.OriginAddress,
		OriginCoordinates:        req.OriginCoordinates,
		DestinationAddress:       req.DestinationAddress,
		DestinationCoordinates:   req.DestinationCoordinates,
		EstimatedDistanceKm:      req.EstimatedDistanceKm,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		TotalLoadKg:              req.TotalLoadKg,
		TotalVolumeM3:            req.TotalVolumeM3,
		Notes:                    req.Notes,
		Stops:                    toStopInputs(req.Stops),
	}, nil
}

func (req updateRouteRequest) toInput() (models.RouteUpdateInput, error) {
	in := models.RouteUpdateInput{
		RouteCode:                req.RouteCode,
		Name:                     req.Name,
		Description:              req.Description,
		DriverID:                 req.DriverID,
		VehicleID:                req.VehicleID,
		PlannedStartTime:         req.PlannedStartTime,
		PlannedEndTime:           req.PlannedEndTime,
		OriginAddress:            req.OriginAddress,
		OriginCoordinates:        req.OriginCoordinates,
		DestinationAddress:       req.DestinationAddress,
		DestinationCoordinates:   req.DestinationCoordinates,
		EstimatedDistanceKm:      req.EstimatedDistanceKm,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		TotalLoadKg:              req.TotalLoadKg,
		TotalVolumeM3:            req.TotalVolumeM3,
		Notes:                    req.Notes,
	}
	if req.Type != nil {
		t := routeType(*req.Type)
		in.Type = &t
	}
	if req.PlannedDate != nil {
		d, err := parseDate("plannedDate", *req.PlannedDate)
		if err != nil {
			return in, err
		}
		in.PlannedDate = &d
	}
	if req.Stops != nil {
		in.Stops = toStopInputs(*req.Stops)
	}
	return in, nil
}

func (req driverRequest) toInput() (models.DriverCreateInput, error) {
	in := models.DriverCreateInput{
		Name:            req.Name,
		CPF:             req.CPF,
		LicenseNumber:   req.LicenseNumber,
		LicenseCategory: req.LicenseCategory,
		Phone:           req.Phone,
	}
	if req.LicenseExpiry != nil {
		d, err := parseDate("licenseExpiry", *req.LicenseExpiry)
		if err != nil {
			return in, err
		}
		in.LicenseExpiry = &d
	}
	return in, nil
}

func (req vehicleRequest) toInput() models.VehicleCreateInput {
	return models.VehicleCreateInput{
		LicensePlate:     req.LicensePlate,
		Model:            req.Model,
		LoadCapacityKg:   req.LoadCapacityKg,
		VolumeCapacityM3: req.VolumeCapacityM3,
		OwnerDocument:    req.OwnerDocument,
	}
}

func toStopResponse(s *models.RouteStop) stopResponse {
	return stopResponse{
		ID:                   s.ID,
		CustomerAddressID:    s.CustomerAddressID,
		Address:              s.Address,
		Coordinates:          s.Coordinates,
		SequenceOrder:        s.SequenceOrder,
		Status:               s.Status,
		DeliveryType:         s.DeliveryType,
		PlannedArrivalTime:   s.PlannedArrivalTime,
		PlannedDepartureTime: s.PlannedDepartureTime,
		ActualArrivalTime:    s.ActualArrivalTime,
		ActualDepartureTime:  s.ActualDepartureTime,
		Notes:                s.Notes,
	}
}

func toRouteResponse(r *models.Route) routeResponse {
	out := routeResponse{
		ID:                       r.ID,
		RouteCode:                r.RouteCode,
		Name:                     r.Name,
		Description:              r.Description,
		DriverID:                 r.DriverID,
		VehicleID:                r.VehicleID,
		Status:                   string(r.Status),
		Type:                     string(r.Type),
		PlannedDate:              r.PlannedDate.Format(models.DateLayout),
		PlannedStartTime:         r.PlannedStartTime,
		PlannedEndTime:           r.PlannedEndTime,
		OriginAddress:            r.OriginAddress,
		OriginCoordinates:        r.OriginCoordinates,
		DestinationAddress:       r.DestinationAddress,
		DestinationCoordinates:   r.DestinationCoordinates,
		EstimatedDistanceKm:      r.EstimatedDistanceKm,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		EstimatedCost:            r.EstimatedCost,
		ActualStartTime:          r.ActualStartTime,
		ActualEndTime:            r.ActualEndTime,
		ActualDistanceKm:         r.ActualDistanceKm,
		ActualDurationMinutes:    r.ActualDurationMinutes,
		TotalLoadKg:              r.TotalLoadKg,
		TotalVolumeM3:            r.TotalVolumeM3,
		CancellationReason:       r.CancellationReason,
		CancelledAt:              r.CancelledAt,
		Notes:                    r.Notes,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
		Stops:                    make([]stopResponse, 0, len(r.Stops)),
	}
	for _, s := range r.Stops {
		out.Stops = append(out.Stops, toStopResponse(s))
	}
	return out
}

func toRouteViewResponse(v *routes.RouteView) routeResponse {
	out := toRouteResponse(v.Route)
	progress, utilization, delayed := v.ProgressPercentage, v.CapacityUtilization, v.Delayed
	out.ProgressPercentage = &progress
	out.CapacityUtilization = &utilization
	out.IsDelayed = &delayed
	return out
}

func toRouteResponses(rs []*models.Route) []routeResponse {
	out := make([]routeResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRouteResponse(r))
	}
	return out
}

func statusString(s *models.RouteStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func toHistoryResponses(hs []*models.RouteHistory) []historyResponse {
	out := make([]historyResponse, 0, len(hs))
	for _, h := range hs {
		out = append(out, historyResponse{
			ID:             h.ID,
			RouteID:        h.RouteID,
			EventType:      string(h.EventType),
			Description:    h.Description,
			PreviousStatus: statusString(h.PreviousStatus),
			NewStatus:      statusString(h.NewStatus),
			Changes:        h.Changes,
			UserID:         h.UserID,
			UserName:       h.UserName,
			UserType:       h.UserType,
			RequestID:      h.RequestID,
			IPAddress:      h.IPAddress,
			CreatedAt:      h.CreatedAt,
		})
	}
	return out
}

func toDriverResponse(d *models.Driver) driverResponse {
	out := driverResponse{
		ID:              d.ID,
		Name:            d.Name,
		CPF:             d.CPF,
		LicenseNumber:   d.LicenseNumber,
		LicenseCategory: d.LicenseCategory,
		Phone:           d.Phone,
		Status:          d.Status,
		IsActive:        d.IsActive,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.LicenseExpiry != nil {
		s := d.LicenseExpiry.Format(models.DateLayout)
		out.LicenseExpiry = &s
	}
	return out
}

func toVehicleResponse(v *models.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:               v.ID,
		LicensePlate:     v.LicensePlate,
		Model:            v.Model,
		Status:           v.Status,
		LoadCapacityKg:   v.LoadCapacityKg,
		VolumeCapacityM3: v.VolumeCapacityM3,
		OwnerDocument:    v.OwnerDocument,
		IsActive:         v.IsActive,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}
