package directions

import (
	"context"
)

// Route is the driving distance and duration between two places.
type Route struct {
	Distance        string `json:"distance"`        // Human readable distance, e.g. "14.3 km".
	Duration        string `json:"duration"`        // Duration formatted by time.Duration, e.g. "47m0s".
	DistanceMeters  int    `json:"distanceMeters"`  // Distance in meters.
	DurationSeconds int64  `json:"durationSeconds"` // Duration in seconds.
}

// Provider is an interface that defines a method for looking up a driving route.
// The Route method takes a context and origin/destination strings as input
// and returns the first leg of the best route, or an error.
type Provider interface {
	Route(ctx context.Context, from, to string) (*Route, error)
}
