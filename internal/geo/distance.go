// Package geo computes great-circle distances between coordinates.
package geo

import (
	"math"
	"strconv"

	"github.com/makweb/addressapi/internal/domain"
)

// EarthRadiusKm is the sphere radius used for all distances. It is kept at
// 6375.5 rather than the mean radius so results match previously published values.
const EarthRadiusKm = 6375.5

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceKm returns the haversine distance in kilometers between two points
// given in degrees. Non-finite input yields a non-finite result.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lon1Rad := toRadians(lon1)
	lat2Rad := toRadians(lat2)
	lon2Rad := toRadians(lon2)

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push a just past 1 for near-antipodal points
	a = math.Min(a, 1)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return c * EarthRadiusKm
}

// Distance is DistanceKm for two coordinates.
func Distance(from, to domain.GeoCoordinate) float64 {
	return DistanceKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}

// IsFinite reports whether km is a usable distance.
func IsFinite(km float64) bool {
	return !math.IsNaN(km) && !math.IsInf(km, 0)
}

// RoundKm rounds to two decimals for display.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// FormatKm renders km with at most two decimals and no trailing zeros.
func FormatKm(km float64) string {
	return strconv.FormatFloat(RoundKm(km), 'f', -1, 64)
}
