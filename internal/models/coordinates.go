package models

// Coordinates represents a geographical point defined by its longitude and latitude in decimal degrees.
type Coordinates struct {
	Longitude float64 `json:"lng"` // Longitude of the geographical point.
	Latitude  float64 `json:"lat"` // Latitude of the geographical point.
}
