package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/UnknownOlympus/tollway/internal/geo"
	"github.com/UnknownOlympus/tollway/internal/metrics"
	"github.com/UnknownOlympus/tollway/internal/models"
	"github.com/UnknownOlympus/tollway/internal/repository"
)

// DefaultRadiusKm is the search radius used when a query carries none.
const DefaultRadiusKm = 5.0

const metersPerKm = 1000

// CorridorService finds toll stations plausibly along a route and ranks them by
// distance from the route start. It holds no mutable state and is safe for concurrent use.
type CorridorService struct {
	log           *slog.Logger     // Logger for logging service activities
	store         repository.Store // Spatially indexed toll station store
	metrics       *metrics.Metrics // Metrics for tracking search performance
	defaultRadius float64          // Radius used when the query has none
}

// NewCorridorService creates a new CorridorService. A non-positive defaultRadiusKm falls back to DefaultRadiusKm.
func NewCorridorService(
	log *slog.Logger,
	store repository.Store,
	metrics *metrics.Metrics,
	defaultRadiusKm float64,
) *CorridorService {
	if !(defaultRadiusKm > 0) || math.IsInf(defaultRadiusKm, 0) {
		defaultRadiusKm = DefaultRadiusKm
	}

	return &CorridorService{
		log:           log,
		store:         store,
		metrics:       metrics,
		defaultRadius: defaultRadiusKm,
	}
}

// Window returns the circle queried for a route: centered on the arithmetic midpoint of start and end,
// with the search radius widened by half the start-end distance so stations near either end are covered.
func Window(start, end models.Coordinates, radiusKm float64) models.SearchWindow {
	return models.SearchWindow{
		Center:   geo.Midpoint(start, end),
		RadiusKm: radiusKm + geo.Distance(start, end)/2,
	}
}

// Search returns the toll stations near the route described by query, sorted ascending by
// great-circle distance from the start. When a vehicle type is given, stations without a
// charge for it are dropped after ranking. An empty result is not an error.
func (cs *CorridorService) Search(ctx context.Context, query models.RouteQuery) ([]models.RankedToll, error) {
	startTime := time.Now()
	tolls, err := cs.search(ctx, query)
	cs.metrics.SearchSeconds.Observe(time.Since(startTime).Seconds())

	switch {
	case err == nil:
		cs.metrics.CorridorSearches.WithLabelValues("success").Inc()
	case isInvalid(err):
		cs.metrics.CorridorSearches.WithLabelValues("invalid").Inc()
	default:
		cs.metrics.CorridorSearches.WithLabelValues("failure").Inc()
	}

	return tolls, err
}

// Estimate runs Search for a vehicle type and sums the charges of every toll found.
func (cs *CorridorService) Estimate(ctx context.Context, query models.RouteQuery) (*models.TollEstimate, error) {
	if query.VehicleType == "" {
		return nil, fmt.Errorf("%w: vehicle type is required for an estimate", ErrInvalidArgument)
	}

	tolls, err := cs.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	estimate := &models.TollEstimate{
		VehicleType: query.VehicleType,
		TollCount:   len(tolls),
		Tolls:       tolls,
	}
	for _, toll := range tolls {
		charge, _ := toll.ChargeFor(query.VehicleType)
		estimate.TotalCharge += charge
	}

	return estimate, nil
}

func (cs *CorridorService) search(ctx context.Context, query models.RouteQuery) ([]models.RankedToll, error) {
	if query.Start == nil || query.End == nil {
		return nil, fmt.Errorf("%w: start and end coordinates are required", ErrInvalidArgument)
	}
	if err := geo.Validate(*query.Start); err != nil {
		return nil, fmt.Errorf("%w: start: %w", ErrInvalidArgument, err)
	}
	if err := geo.Validate(*query.End); err != nil {
		return nil, fmt.Errorf("%w: end: %w", ErrInvalidArgument, err)
	}

	radius := query.RadiusKm
	if !(radius > 0) || math.IsInf(radius, 0) {
		radius = cs.defaultRadius
	}

	start := *query.Start
	window := Window(start, *query.End, radius)

	cs.log.DebugContext(ctx, "Searching tolls along route",
		"center_lng", window.Center.Longitude,
		"center_lat", window.Center.Latitude,
		"radius_km", window.RadiusKm,
		"vehicle_type", query.VehicleType,
	)

	candidates, err := cs.store.FindNear(ctx, window.Center, window.RadiusKm*metersPerKm)
	if err != nil {
		cs.metrics.StoreErrors.Inc()
		cs.log.ErrorContext(ctx, "Failed to query toll stations", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	cs.metrics.Candidates.Observe(float64(len(candidates)))

	ranked := make([]models.RankedToll, 0, len(candidates))
	for _, station := range candidates {
		ranked = append(ranked, models.RankedToll{
			TollStation:       station,
			DistanceFromStart: geo.Distance(start, station.Location),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceFromStart < ranked[j].DistanceFromStart
	})

	if query.VehicleType == "" {
		return ranked, nil
	}

	filtered := ranked[:0]
	for _, toll := range ranked {
		if _, ok := toll.ChargeFor(query.VehicleType); ok {
			filtered = append(filtered, toll)
		}
	}

	return filtered, nil
}
