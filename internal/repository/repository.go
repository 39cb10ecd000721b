package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/tollway/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when no toll station exists for the requested id.
var ErrNotFound = errors.New("toll station not found")

// Database is the subset of pgxpool.Pool used by the repository. pgxmock satisfies it in tests.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// Store is a spatially indexed collection of toll stations.
type Store interface {
	// FindNear returns every station within maxDistanceMeters of center, nearest first.
	FindNear(ctx context.Context, center models.Coordinates, maxDistanceMeters float64) ([]models.TollStation, error)
	Get(ctx context.Context, id uuid.UUID) (*models.TollStation, error)
	Create(ctx context.Context, station models.TollStation) error
	Update(ctx context.Context, station models.TollStation) error
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// Repository is the PostGIS backed Store.
type Repository struct {
	db  Database
	log *slog.Logger
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// Ping checks that the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
