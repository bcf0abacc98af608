// Package geo estimates route distance, duration and cost from coordinate strings.
package geo

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const earthRadiusKm = 6371.0

type Point struct {
	Lat float64
	Lng float64
}

// String renders the point in the same "POINT(lat lng)" form ParsePoint accepts.
func (p Point) String() string {
	return "POINT(" + strconv.FormatFloat(p.Lat, 'f', 6, 64) + " " + strconv.FormatFloat(p.Lng, 'f', 6, 64) + ")"
}

var pointRe = regexp.MustCompile(`^\s*POINT\s*\(\s*(-?\d+(?:\.\d+)?)\s+(-?\d+(?:\.\d+)?)\s*\)\s*$`)

// ParsePoint accepts "POINT(lat lng)" and the plain "lat,lng" form.
func ParsePoint(s string) (Point, error) {
	var latS, lngS string
	if m := pointRe.FindStringSubmatch(strings.ToUpper(s)); m != nil {
		latS, lngS = m[1], m[2]
	} else if parts := strings.Split(s, ","); len(parts) == 2 {
		latS, lngS = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	} else {
		return Point{}, errors.Errorf("unsupported coordinate format %q", s)
	}

	lat, err := strconv.ParseFloat(latS, 64)
	if err != nil {
		return Point{}, errors.Wrap(err, "parse latitude")
	}
	lng, err := strconv.ParseFloat(lngS, 64)
	if err != nil {
		return Point{}, errors.Wrap(err, "parse longitude")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Point{}, errors.Errorf("coordinates out of range %q", s)
	}
	return Point{Lat: lat, Lng: lng}, nil
}

func haversineKm(a, b Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// CalculateDistance returns the great-circle distance in km rounded to 2 decimals.
// Malformed input yields 0 and a warning, never an error.
func CalculateDistance(pointA, pointB string) float64 {
	a, err := ParsePoint(pointA)
	if err != nil {
		slog.Warn("distance: bad origin coordinates", "value", pointA, "error", err.Error())
		return 0
	}
	b, err := ParsePoint(pointB)
	if err != nil {
		slog.Warn("distance: bad destination coordinates", "value", pointB, "error", err.Error())
		return 0
	}
	return round2(haversineKm(a, b))
}

// CalculateTotalDistance sums consecutive legs. Fewer than two points is 0.
func CalculateTotalDistance(points []string) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += CalculateDistance(points[i-1], points[i])
	}
	return round2(total)
}

// CalculateEstimatedDuration is ceil(distance / speed * 60 * delayFactor) minutes.
func CalculateEstimatedDuration(distanceKm, avgSpeedKmh, delayFactor float64) int {
	if distanceKm <= 0 || avgSpeedKmh <= 0 {
		return 0
	}
	if delayFactor <= 0 {
		delayFactor = 1
	}
	// Rounded before ceil so float noise like 144.00000000000003 stays 144.
	raw := distanceKm / avgSpeedKmh * 60 * delayFactor
	return int(math.Ceil(math.Round(raw*1e6) / 1e6))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
