package models

import (
	"time"

	"github.com/google/uuid"
)

// TollStation is a fixed point on the road network that charges a fee depending on vehicle category.
type TollStation struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name,omitempty"`
	Location           Coordinates        `json:"location"`
	VehicleTypeCharges map[string]float64 `json:"vehicleTypeCharges"`
	CongestionLevel    int                `json:"congestionLevel"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// ChargeFor reports the charge for the vehicle type. A missing entry and an explicit zero
// are both treated as "not applicable".
func (t TollStation) ChargeFor(vehicleType string) (float64, bool) {
	charge, ok := t.VehicleTypeCharges[vehicleType]
	if !ok || charge == 0 {
		return 0, false
	}

	return charge, true
}

// RouteQuery describes a toll search between two points.
type RouteQuery struct {
	Start       *Coordinates // Start of the route, required.
	End         *Coordinates // End of the route, required.
	RadiusKm    float64      // Search radius around the route in kilometers.
	VehicleType string       // Optional vehicle type filter.
}

// RankedToll is a toll station annotated with its great-circle distance from the route start.
type RankedToll struct {
	TollStation

	DistanceFromStart float64 `json:"distanceFromStart"`
}

// SearchWindow is the circle queried against the toll store for a route.
type SearchWindow struct {
	Center   Coordinates `json:"center"`
	RadiusKm float64     `json:"radiusKm"`
}

// TollEstimate sums the charges of every toll along a route for one vehicle type.
type TollEstimate struct {
	VehicleType string       `json:"vehicleType"`
	TollCount   int          `json:"tollCount"`
	TotalCharge float64      `json:"totalCharge"`
	Tolls       []RankedToll `json:"tolls"`
}
