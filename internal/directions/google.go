package directions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps directions service.
type GoogleProvider struct {
	client DirectionsAPIClient // client is the Google Maps API client
	log    *slog.Logger        // log is the logger for logging operations
}

type DirectionsAPIClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with no route.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider returns a GoogleProvider around an existing Directions client.
func NewGoogleProvider(client DirectionsAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// NewGoogleProviderFromKey creates a Google Maps client for apiKey, rate limited to
// rateLimit requests per second when rateLimit is positive.
func NewGoogleProviderFromKey(apiKey string, rateLimit int, log *slog.Logger) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
	}
	if rateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(rateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, log), nil
}

// Route asks the Google Maps Directions API for a driving route between from and to
// and returns the distance and duration of its first leg.
func (gp *GoogleProvider) Route(ctx context.Context, from, to string) (*Route, error) {
	gp.log.DebugContext(ctx, "Requesting directions from Google Maps", "from", from, "to", to)

	req := maps.DirectionsRequest{Origin: from, Destination: to, Mode: maps.TravelModeDriving}
	routes, _, err := gp.client.Directions(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to get directions: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 || routes[0].Legs[0] == nil {
		return nil, ErrEmptyResponse
	}
	leg := routes[0].Legs[0]

	return &Route{
		Distance:        leg.Distance.HumanReadable,
		Duration:        leg.Duration.String(),
		DistanceMeters:  leg.Distance.Meters,
		DurationSeconds: int64(leg.Duration.Seconds()),
	}, nil
}
