package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/tollway/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const schemaQuery = `
	CREATE EXTENSION IF NOT EXISTS postgis;
	CREATE TABLE IF NOT EXISTS public.toll_stations (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		location GEOGRAPHY(Point, 4326) NOT NULL,
		vehicle_type_charges JSONB NOT NULL DEFAULT '{}'::jsonb,
		congestion_level INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_toll_stations_location ON public.toll_stations USING GIST (location);
`

// EnsureSchema creates the PostGIS extension, the toll_stations table and its spatial index.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaQuery); err != nil {
		return fmt.Errorf("failed to ensure toll stations schema: %w", err)
	}

	return nil
}

// FindNear returns the toll stations whose location lies within maxDistanceMeters of center.
// The results are ordered by distance from center, nearest first.
func (r *Repository) FindNear(
	ctx context.Context,
	center models.Coordinates,
	maxDistanceMeters float64,
) ([]models.TollStation, error) {
	query := `
		SELECT id::text, name, ST_X(location::geometry), ST_Y(location::geometry),
			vehicle_type_charges, congestion_level, created_at, updated_at
		FROM public.toll_stations
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) ASC;
	`

	rows, err := r.db.Query(ctx, query, center.Longitude, center.Latitude, maxDistanceMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to query toll stations near point: %w", err)
	}
	defer rows.Close()

	stations := []models.TollStation{}
	for rows.Next() {
		station, errScan := scanStation(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan toll station: %w", errScan)
		}
		stations = append(stations, station)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Toll stations found near point",
		"lng", center.Longitude, "lat", center.Latitude, "meters", maxDistanceMeters, "count", len(stations))

	return stations, nil
}

// Get returns the toll station with the given id or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.TollStation, error) {
	query := `
		SELECT id::text, name, ST_X(location::geometry), ST_Y(location::geometry),
			vehicle_type_charges, congestion_level, created_at, updated_at
		FROM public.toll_stations
		WHERE id = $1;
	`

	station, err := scanStation(r.db.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get toll station: %w", err)
	}

	return &station, nil
}

// Create inserts a new toll station.
func (r *Repository) Create(ctx context.Context, station models.TollStation) error {
	query := `
		INSERT INTO public.toll_stations
			(id, name, location, vehicle_type_charges, congestion_level, created_at, updated_at)
		VALUES
			($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5, $6, $7, $8);
	`

	charges, err := encodeCharges(station.VehicleTypeCharges)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query,
		station.ID.String(), station.Name, station.Location.Longitude, station.Location.Latitude,
		charges, station.CongestionLevel, station.CreatedAt, station.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert toll station: %w", err)
	}

	return nil
}

// Update overwrites every mutable column of an existing toll station.
func (r *Repository) Update(ctx context.Context, station models.TollStation) error {
	query := `
		UPDATE public.toll_stations
		SET
			name = $2,
			location = ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography,
			vehicle_type_charges = $5,
			congestion_level = $6,
			updated_at = $7
		WHERE id = $1;
	`

	charges, err := encodeCharges(station.VehicleTypeCharges)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query,
		station.ID.String(), station.Name, station.Location.Longitude, station.Location.Latitude,
		charges, station.CongestionLevel, station.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update toll station: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the toll station with the given id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM public.toll_stations WHERE id = $1;`

	tag, err := r.db.Exec(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete toll station: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanStation(row pgx.Row) (models.TollStation, error) {
	var (
		station models.TollStation
		rawID   string
		charges []byte
	)

	err := row.Scan(
		&rawID, &station.Name, &station.Location.Longitude, &station.Location.Latitude,
		&charges, &station.CongestionLevel, &station.CreatedAt, &station.UpdatedAt,
	)
	if err != nil {
		return station, err
	}

	if station.ID, err = uuid.Parse(rawID); err != nil {
		return station, fmt.Errorf("invalid toll station id %q: %w", rawID, err)
	}

	station.VehicleTypeCharges = map[string]float64{}
	if len(charges) > 0 {
		if err = json.Unmarshal(charges, &station.VehicleTypeCharges); err != nil {
			return station, fmt.Errorf("invalid vehicle type charges: %w", err)
		}
	}

	return station, nil
}

func encodeCharges(charges map[string]float64) ([]byte, error) {
	if charges == nil {
		charges = map[string]float64{}
	}

	raw, err := json.Marshal(charges)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vehicle type charges: %w", err)
	}

	return raw, nil
}
