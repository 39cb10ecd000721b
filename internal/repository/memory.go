package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/UnknownOlympus/tollway/internal/geo"
	"github.com/UnknownOlympus/tollway/internal/models"
	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
)

const (
	rtreeDimensions = 2
	rtreeMinBranch  = 25
	rtreeMaxBranch  = 50
	pointTolerance  = 1e-9
	metersPerKm     = 1000
)

// stationItem is a toll station stored in the R-tree, keyed by its longitude/latitude point.
type stationItem struct {
	station models.TollStation
	seq     uint64 // insertion order, used to keep equal distances stable
}

func (s *stationItem) Bounds() rtreego.Rect {
	return rtreego.Point{s.station.Location.Longitude, s.station.Location.Latitude}.ToRect(pointTolerance)
}

// MemoryStore keeps toll stations in an in-process R-tree. It is used for local runs and tests
// where a PostGIS instance is not available.
type MemoryStore struct {
	mu    sync.RWMutex
	tree  *rtreego.Rtree
	items map[uuid.UUID]*stationItem
	seq   uint64
	log   *slog.Logger
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(log *slog.Logger) *MemoryStore {
	return &MemoryStore{
		tree:  rtreego.NewTree(rtreeDimensions, rtreeMinBranch, rtreeMaxBranch),
		items: make(map[uuid.UUID]*stationItem),
		log:   log,
	}
}

// FindNear prefilters stations with a bounding box query on the tree and keeps the ones whose
// great-circle distance from center is within maxDistanceMeters, nearest first.
func (m *MemoryStore) FindNear(
	ctx context.Context,
	center models.Coordinates,
	maxDistanceMeters float64,
) ([]models.TollStation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	radiusKm := maxDistanceMeters / metersPerKm
	minC, maxC := geo.BoundingBox(center, radiusKm)
	box, err := rtreego.NewRectFromPoints(
		rtreego.Point{minC.Longitude, minC.Latitude},
		rtreego.Point{maxC.Longitude, maxC.Latitude},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build search box: %w", err)
	}

	type candidate struct {
		item     *stationItem
		distance float64
	}

	m.mu.RLock()
	hits := m.tree.SearchIntersect(box)
	candidates := make([]candidate, 0, len(hits))
	for _, hit := range hits {
		item, ok := hit.(*stationItem)
		if !ok {
			continue
		}
		if d := geo.Distance(center, item.station.Location); d <= radiusKm {
			candidates = append(candidates, candidate{item: item, distance: d})
		}
	}
	m.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].item.seq < candidates[j].item.seq
	})

	stations := make([]models.TollStation, 0, len(candidates))
	for _, c := range candidates {
		stations = append(stations, cloneStation(c.item.station))
	}

	m.log.DebugContext(ctx, "Toll stations found near point",
		"lng", center.Longitude, "lat", center.Latitude, "meters", maxDistanceMeters, "count", len(stations))

	return stations, nil
}

// Get returns the toll station with the given id or ErrNotFound.
func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*models.TollStation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	station := cloneStation(item.station)

	return &station, nil
}

// Create inserts a new toll station. Creating an id that already exists fails.
func (m *MemoryStore) Create(_ context.Context, station models.TollStation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[station.ID]; exists {
		return fmt.Errorf("failed to insert toll station: duplicate id %s", station.ID)
	}

	m.seq++
	item := &stationItem{station: cloneStation(station), seq: m.seq}
	m.items[station.ID] = item
	m.tree.Insert(item)

	return nil
}

// Update replaces an existing toll station, re-indexing it if its location moved.
func (m *MemoryStore) Update(_ context.Context, station models.TollStation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.items[station.ID]
	if !ok {
		return ErrNotFound
	}

	m.tree.Delete(old)
	station.CreatedAt = old.station.CreatedAt
	item := &stationItem{station: cloneStation(station), seq: old.seq}
	m.items[station.ID] = item
	m.tree.Insert(item)

	return nil
}

// Delete removes the toll station with the given id.
func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}

	m.tree.Delete(item)
	delete(m.items, id)

	return nil
}

// Ping always succeeds for the in-memory store.
func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func cloneStation(s models.TollStation) models.TollStation {
	charges := make(map[string]float64, len(s.VehicleTypeCharges))
	for k, v := range s.VehicleTypeCharges {
		charges[k] = v
	}
	s.VehicleTypeCharges = charges

	return s
}
