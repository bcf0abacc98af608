package geo

import "github.com/BearBump/RouteBox/internal/models"

type RouteCharacteristics struct {
	AvgSpeedKmh float64
	DelayFactor float64
	CostPerKm   float64
}

var characteristics = map[models.RouteType]RouteCharacteristics{
	models.RouteTypeUrban:      {AvgSpeedKmh: 40, DelayFactor: 1.3, CostPerKm: 2.5},
	models.RouteTypeInterstate: {AvgSpeedKmh: 80, DelayFactor: 1.1, CostPerKm: 1.8},
	models.RouteTypeRural:      {AvgSpeedKmh: 60, DelayFactor: 1.2, CostPerKm: 2.0},
	models.RouteTypeExpress:    {AvgSpeedKmh: 100, DelayFactor: 1.0, CostPerKm: 3.0},
	models.RouteTypeLocal:      {AvgSpeedKmh: 30, DelayFactor: 1.4, CostPerKm: 2.2},
}

// Characteristics falls back to URBAN for unknown types.
func Characteristics(t models.RouteType) RouteCharacteristics {
	if c, ok := characteristics[t]; ok {
		return c
	}
	return characteristics[models.RouteTypeUrban]
}

type Estimate struct {
	DistanceKm      float64
	DurationMinutes int
	Cost            float64
}

// EstimateRoute runs the whole estimator over an ordered list of coordinates.
func EstimateRoute(t models.RouteType, points []string) Estimate {
	c := Characteristics(t)
	d := CalculateTotalDistance(points)
	return Estimate{
		DistanceKm:      d,
		DurationMinutes: CalculateEstimatedDuration(d, c.AvgSpeedKmh, c.DelayFactor),
		Cost:            EstimateCost(d, t),
	}
}

func EstimateCost(distanceKm float64, t models.RouteType) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return round2(distanceKm * Characteristics(t).CostPerKm)
}
