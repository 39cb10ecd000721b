//go:build integration

package repository_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/tollway/internal/models"
	"github.com/UnknownOlympus/tollway/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestRepository_PostGIS(t *testing.T) {
	ctx := t.Context()

	ctr, err := postgres.Run(ctx, "postgis/postgis:16-3.4-alpine",
		postgres.WithDatabase("tollway"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	defer func() {
		require.NoError(t, testcontainers.TerminateContainer(ctr))
	}()
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	repo := repository.NewRepository(pool, slog.Default())
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.Ping(ctx))

	now := time.Now().UTC().Truncate(time.Microsecond)
	near := models.TollStation{
		ID: uuid.New(), Name: "near",
		Location:           models.Coordinates{Longitude: 77.16, Latitude: 28.75},
		VehicleTypeCharges: map[string]float64{"Car": 65, "Bike": 0},
		CongestionLevel:    2, CreatedAt: now, UpdatedAt: now,
	}
	middle := models.TollStation{
		ID: uuid.New(), Name: "middle",
		Location:  models.Coordinates{Longitude: 77.15, Latitude: 28.80},
		CreatedAt: now, UpdatedAt: now,
	}
	far := models.TollStation{
		ID: uuid.New(), Name: "far",
		Location:  models.Coordinates{Longitude: 77.15, Latitude: 28.95},
		CreatedAt: now, UpdatedAt: now,
	}
	for _, s := range []models.TollStation{far, middle, near} {
		require.NoError(t, repo.Create(ctx, s))
	}

	stations, err := repo.FindNear(ctx, models.Coordinates{Longitude: 77.15, Latitude: 28.75}, 10_000)
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, near.ID, stations[0].ID)
	assert.Equal(t, middle.ID, stations[1].ID)
	assert.Equal(t, near.VehicleTypeCharges, stations[0].VehicleTypeCharges)

	got, err := repo.Get(ctx, near.ID)
	require.NoError(t, err)
	assert.InDelta(t, 77.16, got.Location.Longitude, 1e-9)
	assert.Equal(t, 2, got.CongestionLevel)

	near.CongestionLevel = 5
	near.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, near))
	got, err = repo.Get(ctx, near.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.CongestionLevel)

	require.NoError(t, repo.Delete(ctx, near.ID))
	_, err = repo.Get(ctx, near.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
