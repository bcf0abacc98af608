package routes

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BearBump/RouteBox/internal/audit"
	"github.com/BearBump/RouteBox/internal/models"
)

// DefaultDiffConfig is used when the service is built without WithDiffConfig.
var DefaultDiffConfig = audit.DiffConfig{
	Ignore: []string{"created_at", "updated_at"},
}

// snapshot flattens the editable part of a route for audit diffs. Each stop
// contributes its own keys under "stop.<sequence>.".
func snapshot(r *models.Route) map[string]*string {
	m := map[string]*string{
		"route_code":                 str(r.RouteCode),
		"name":                       str(r.Name),
		"description":                r.Description,
		"driver_id":                  str(r.DriverID),
		"vehicle_id":                 str(r.VehicleID),
		"type":                       str(string(r.Type)),
		"planned_date":               str(r.PlannedDate.Format(models.DateLayout)),
		"planned_start_time":         r.PlannedStartTime,
		"planned_end_time":           r.PlannedEndTime,
		"origin_address":             r.OriginAddress,
		"origin_coordinates":         r.OriginCoordinates,
		"destination_address":        r.DestinationAddress,
		"destination_coordinates":    r.DestinationCoordinates,
		"estimated_distance_km":      floatStr(r.EstimatedDistanceKm),
		"estimated_duration_minutes": intStr(r.EstimatedDurationMinutes),
		"estimated_cost":             floatStr(r.EstimatedCost),
		"total_load_kg":              floatStr(r.TotalLoadKg),
		"total_volume_m3":            floatStr(r.TotalVolumeM3),
		"notes":                      r.Notes,
		"stops":                      stopsDigest(r.Stops),
	}
	for _, st := range r.Stops {
		p := fmt.Sprintf("stop.%d.", st.SequenceOrder)
		m[p+"customer_address_id"] = str(st.CustomerAddressID)
		m[p+"address"] = st.Address
		m[p+"coordinates"] = st.Coordinates
		m[p+"delivery_type"] = str(st.DeliveryType)
		m[p+"planned_arrival_time"] = timeStr(st.PlannedArrivalTime)
		m[p+"planned_departure_time"] = timeStr(st.PlannedDepartureTime)
		m[p+"notes"] = st.Notes
	}
	return m
}

// stopsDigest renders stops as "seq:address_id" pairs in sequence order.
func stopsDigest(stops []*models.RouteStop) *string {
	if len(stops) == 0 {
		return nil
	}
	sorted := make([]*models.RouteStop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SequenceOrder < sorted[j].SequenceOrder })

	parts := make([]string, 0, len(sorted))
	for _, s := range sorted {
		parts = append(parts, fmt.Sprintf("%d:%s", s.SequenceOrder, s.CustomerAddressID))
	}
	return str(strings.Join(parts, ","))
}

func str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timeStr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return str(t.UTC().Format(time.RFC3339))
}

func floatStr(v *float64) *string {
	if v == nil {
		return nil
	}
	return str(strconv.FormatFloat(*v, 'f', -1, 64))
}

func intStr(v *int) *string {
	if v == nil {
		return nil
	}
	return str(strconv.Itoa(*v))
}
