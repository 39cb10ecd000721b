// Package geo holds the spherical math used by toll search: great-circle distance,
// coordinate validation and search-window helpers.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/tollway/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
const EarthRadiusKm = 6371.0

const (
	maxLatitude  = 90.0
	maxLongitude = 180.0
	kmPerDegree  = math.Pi * EarthRadiusKm / 180
)

// ErrInvalidCoordinate is returned when a coordinate is not a finite point on the globe.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Validate checks that the coordinate is finite and inside the valid latitude and longitude ranges.
func Validate(c models.Coordinates) error {
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) ||
		c.Longitude < -maxLongitude || c.Longitude > maxLongitude {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrInvalidCoordinate, c.Longitude)
	}
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) ||
		c.Latitude < -maxLatitude || c.Latitude > maxLatitude {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrInvalidCoordinate, c.Latitude)
	}

	return nil
}

// Distance returns the great-circle distance in kilometers between two points
// using the Haversine formula.
func Distance(from, to models.Coordinates) float64 {
	lat1 := toRadians(from.Latitude)
	lat2 := toRadians(to.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(to.Longitude - from.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// Rounding can push a slightly outside [0,1] for coincident or antipodal points.
	a = math.Max(0, math.Min(1, a))

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Midpoint returns the arithmetic mean of both axes. It is an approximation, not the geodesic midpoint.
func Midpoint(a, b models.Coordinates) models.Coordinates {
	return models.Coordinates{
		Longitude: (a.Longitude + b.Longitude) / 2,
		Latitude:  (a.Latitude + b.Latitude) / 2,
	}
}

// BoundingBox returns the south-west and north-east corners of a box that contains every point
// within radiusKm of center. Near the poles, or when the box would cross the antimeridian,
// the full longitude range is returned.
func BoundingBox(center models.Coordinates, radiusKm float64) (models.Coordinates, models.Coordinates) {
	dLat := radiusKm / kmPerDegree
	minLat := math.Max(center.Latitude-dLat, -maxLatitude)
	maxLat := math.Min(center.Latitude+dLat, maxLatitude)

	minLon, maxLon := -maxLongitude, maxLongitude
	if minLat > -maxLatitude && maxLat < maxLatitude {
		// The widest longitude span is at the latitude closest to a pole.
		widest := math.Max(math.Abs(minLat), math.Abs(maxLat))
		if cos := math.Cos(toRadians(widest)); cos > 0 {
			dLon := radiusKm / (kmPerDegree * cos)
			if center.Longitude-dLon >= -maxLongitude && center.Longitude+dLon <= maxLongitude {
				minLon, maxLon = center.Longitude-dLon, center.Longitude+dLon
			}
		}
	}

	return models.Coordinates{Longitude: minLon, Latitude: minLat},
		models.Coordinates{Longitude: maxLon, Latitude: maxLat}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
