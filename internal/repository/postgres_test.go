package repository_test

import (
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/UnknownOlympus/tollway/internal/models"
	"github.com/UnknownOlympus/tollway/internal/repository"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const findNearQuery = `
	SELECT id::text, name, ST_X(location::geometry), ST_Y(location::geometry),
		vehicle_type_charges, congestion_level, created_at, updated_at
	FROM public.toll_stations
	WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
	ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) ASC;
`

var stationColumns = []string{
	"id", "name", "st_x", "st_y", "vehicle_type_charges", "congestion_level", "created_at", "updated_at",
}

// anySQL matches any statement; the SQL text is checked where it matters.
const anySQL = `.+`

func TestFindNear(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	center := models.Coordinates{Longitude: 77.15125, Latitude: 28.75205}
	meters := 12150.0

	t.Run("error - query stations", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(findNearQuery)).
			WithArgs(center.Longitude, center.Latitude, meters).
			WillReturnError(assert.AnError)

		stations, err := repo.FindNear(ctx, center, meters)

		require.Nil(t, stations)
		require.ErrorContains(t, err, "failed to query toll stations near point")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan invalid id", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(findNearQuery)).
			WithArgs(center.Longitude, center.Latitude, meters).
			WillReturnRows(pgxmock.NewRows(stationColumns).
				AddRow("not-a-uuid", "A", 77.1, 28.7, []byte(`{}`), 0, time.Now(), time.Now()))

		stations, err := repo.FindNear(ctx, center, meters)

		require.Nil(t, stations)
		require.ErrorContains(t, err, "failed to scan toll station")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(findNearQuery)).
			WithArgs(center.Longitude, center.Latitude, meters).
			WillReturnRows(pgxmock.NewRows(stationColumns).
				AddRow(uuid.NewString(), "A", 77.1, 28.7, []byte(`{}`), 0, time.Now(), time.Now()).
				RowError(1, assert.AnError))

		stations, err := repo.FindNear(ctx, center, meters)

		require.Nil(t, stations)
		require.ErrorContains(t, err, "failed to read row")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - stations in store order", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		first, second := uuid.New(), uuid.New()
		created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta(findNearQuery)).
			WithArgs(center.Longitude, center.Latitude, meters).
			WillReturnRows(pgxmock.NewRows(stationColumns).
				AddRow(first.String(), "Mundka", 77.03, 28.68, []byte(`{"Car":65,"Truck":210}`), 3, created, created).
				AddRow(second.String(), "Narela", 77.09, 28.85, []byte(`{}`), 1, created, created))

		stations, err := repo.FindNear(ctx, center, meters)

		require.NoError(t, err)
		require.Len(t, stations, 2)
		assert.Equal(t, first, stations[0].ID)
		assert.Equal(t, "Mundka", stations[0].Name)
		assert.InDelta(t, 77.03, stations[0].Location.Longitude, 1e-9)
		assert.InDelta(t, 28.68, stations[0].Location.Latitude, 1e-9)
		assert.Equal(t, map[string]float64{"Car": 65, "Truck": 210}, stations[0].VehicleTypeCharges)
		assert.Equal(t, 3, stations[0].CongestionLevel)
		assert.Equal(t, created, stations[0].CreatedAt)
		assert.Equal(t, second, stations[1].ID)
		assert.Empty(t, stations[1].VehicleTypeCharges)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - no stations", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(findNearQuery)).
			WithArgs(center.Longitude, center.Latitude, meters).
			WillReturnRows(pgxmock.NewRows(stationColumns))

		stations, err := repo.FindNear(ctx, center, meters)

		require.NoError(t, err)
		assert.NotNil(t, stations)
		assert.Empty(t, stations)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGet(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	id := uuid.New()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(anySQL).WithArgs(id.String()).WillReturnRows(pgxmock.NewRows(stationColumns))

		station, err := repo.Get(ctx, id)

		require.Nil(t, station)
		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(anySQL).WithArgs(id.String()).WillReturnError(assert.AnError)

		station, err := repo.Get(ctx, id)

		require.Nil(t, station)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to get toll station")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		now := time.Now().UTC()

		mock.ExpectQuery(anySQL).WithArgs(id.String()).
			WillReturnRows(pgxmock.NewRows(stationColumns).
				AddRow(id.String(), "Kherki Daula", 76.99, 28.39, []byte(`{"Bike":0,"Car":80}`), 4, now, now))

		station, err := repo.Get(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, station.ID)
		assert.Equal(t, "Kherki Daula", station.Name)
		assert.Equal(t, map[string]float64{"Bike": 0, "Car": 80}, station.VehicleTypeCharges)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreate(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	now := time.Now().UTC()
	station := models.TollStation{
		ID:                 uuid.New(),
		Name:               "Mundka",
		Location:           models.Coordinates{Longitude: 77.03, Latitude: 28.68},
		VehicleTypeCharges: map[string]float64{"Car": 65},
		CongestionLevel:    2,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	t.Run("error - insert", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO public.toll_stations")).
			WithArgs(station.ID.String(), station.Name, station.Location.Longitude, station.Location.Latitude,
				[]byte(`{"Car":65}`), station.CongestionLevel, station.CreatedAt, station.UpdatedAt).
			WillReturnError(assert.AnError)

		err = repo.Create(ctx, station)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to insert toll station")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO public.toll_stations")).
			WithArgs(station.ID.String(), station.Name, station.Location.Longitude, station.Location.Latitude,
				[]byte(`{"Car":65}`), station.CongestionLevel, station.CreatedAt, station.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Create(ctx, station))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateAndDelete(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	station := models.TollStation{
		ID:       uuid.New(),
		Location: models.Coordinates{Longitude: 77.03, Latitude: 28.68},
	}

	t.Run("update missing row", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE public.toll_stations")).
			WithArgs(station.ID.String(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		require.ErrorIs(t, repo.Update(ctx, station), repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE public.toll_stations")).
			WithArgs(station.ID.String(), "", 77.03, 28.68, []byte(`{}`), 0, station.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.Update(ctx, station))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM public.toll_stations")).
			WithArgs(station.ID.String()).
			WillReturnError(assert.AnError)

		err = repo.Delete(ctx, station.ID)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to delete toll station")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete missing row", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM public.toll_stations")).
			WithArgs(station.ID.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.ErrorIs(t, repo.Delete(ctx, station.ID), repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEnsureSchema(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := repository.NewRepository(mock, slog.Default())

	mock.ExpectExec(regexp.QuoteMeta("CREATE EXTENSION IF NOT EXISTS postgis;")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, repo.EnsureSchema(t.Context()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
