package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/UnknownOlympus/tollway/internal/geo"
	"github.com/UnknownOlympus/tollway/internal/models"
	"github.com/google/uuid"
)

// SeedFromJSON loads a JSON array of toll stations from path and creates the ones missing from store.
// Stations without an id get one derived from their name and location, so seeding the same file
// again on restart creates nothing. It returns the number of stations created.
func SeedFromJSON(ctx context.Context, store Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file %q: %w", path, err)
	}

	var stations []models.TollStation
	if err = json.Unmarshal(data, &stations); err != nil {
		return 0, fmt.Errorf("failed to decode seed file %q: %w", path, err)
	}

	now := time.Now().UTC()
	created := 0
	for i, station := range stations {
		if err = geo.Validate(station.Location); err != nil {
			return created, fmt.Errorf("seed station %d: %w", i, err)
		}
		if station.ID == uuid.Nil {
			station.ID = seedID(station)
		}

		_, err = store.Get(ctx, station.ID)
		switch {
		case err == nil:
			continue
		case !errors.Is(err, ErrNotFound):
			return created, fmt.Errorf("seed station %d: %w", i, err)
		}

		if station.CreatedAt.IsZero() {
			station.CreatedAt = now
		}
		station.UpdatedAt = now

		if err = store.Create(ctx, station); err != nil {
			return created, fmt.Errorf("seed station %d: %w", i, err)
		}
		created++
	}

	return created, nil
}

// seedID is stable for a given name and location.
func seedID(station models.TollStation) uuid.UUID {
	key := fmt.Sprintf("%s|%.6f|%.6f", station.Name, station.Location.Longitude, station.Location.Latitude)

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}
