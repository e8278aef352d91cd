package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/umahmood/haversine"

	"github.com/makweb/addressapi/internal/domain"
)

func TestDistanceKmIdenticalPoints(t *testing.T) {
	points := []domain.GeoCoordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 52.3731, Longitude: 4.8922},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 90, Longitude: 180},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p, p), "distance of %+v to itself", p)
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	ams := domain.GeoCoordinate{Latitude: 52.3731, Longitude: 4.8922}
	nyc := domain.GeoCoordinate{Latitude: 40.7128, Longitude: -74.0060}

	assert.Equal(t, Distance(ams, nyc), Distance(nyc, ams))
}

func TestDistanceKmOneDegreeAtEquator(t *testing.T) {
	km := DistanceKm(0, 0, 0, 1)
	assert.InDelta(t, 111.24, km, 0.5)
	assert.InDelta(t, EarthRadiusKm*math.Pi/180, km, 1e-9)
}

func TestDistanceKmAntipodal(t *testing.T) {
	km := DistanceKm(0, 0, 0, 180)
	assert.InDelta(t, math.Pi*EarthRadiusKm, km, 1e-6)
	assert.InDelta(t, 20029.22, km, 0.01)
}

func TestDistanceKmMatchesReferenceImplementation(t *testing.T) {
	// the reference uses a 6371 km radius, so scale before comparing
	const referenceRadiusKm = 6371.0

	pairs := [][2]haversine.Coord{
		{{Lat: 52.3731, Lon: 4.8922}, {Lat: 51.9244, Lon: 4.4777}},
		{{Lat: 40.7128, Lon: -74.0060}, {Lat: 34.0522, Lon: -118.2437}},
		{{Lat: -33.8688, Lon: 151.2093}, {Lat: 35.6762, Lon: 139.6503}},
	}
	for _, p := range pairs {
		_, refKm := haversine.Distance(p[0], p[1])
		km := DistanceKm(p[0].Lat, p[0].Lon, p[1].Lat, p[1].Lon)
		assert.InDelta(t, refKm*EarthRadiusKm/referenceRadiusKm, km, 1e-6)
	}
}

func TestDistanceKmNonFinite(t *testing.T) {
	assert.False(t, IsFinite(DistanceKm(math.NaN(), 0, 0, 0)))
	assert.False(t, IsFinite(DistanceKm(0, math.Inf(1), 0, 0)))
	assert.True(t, IsFinite(DistanceKm(10, 10, 20, 20)))
}

func TestFormatKm(t *testing.T) {
	assert.Equal(t, "111.27", FormatKm(DistanceKm(0, 0, 0, 1)))
	assert.Equal(t, "12.5", FormatKm(12.499999))
	assert.Equal(t, "3", FormatKm(3.001))
	assert.Equal(t, "0", FormatKm(0))
}
