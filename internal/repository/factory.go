package repository

import (
	"errors"
	"fmt"
	"log/slog"
)

// StoreType selects the toll station storage backend.
type StoreType string

const (
	// StoreTypePostgres stores toll stations in PostgreSQL with PostGIS.
	StoreTypePostgres StoreType = "postgres"
	// StoreTypeMemory keeps toll stations in an in-process R-tree.
	StoreTypeMemory StoreType = "memory"
)

// StoreConfig holds configuration for creating a toll station store.
type StoreConfig struct {
	Type   StoreType    // Type of store to create
	DB     Database     // Database connection (used by the postgres store)
	Logger *slog.Logger // Logger for the store
}

// NewStore creates a toll station store based on the provided configuration.
//
// Supported store types:
// - "postgres": PostGIS table queried with ST_DWithin (requires a database)
// - "memory": R-tree index held in process memory
func NewStore(config StoreConfig) (Store, error) {
	switch config.Type {
	case StoreTypePostgres:
		if config.DB == nil {
			return nil, errors.New("database is required for postgres store")
		}
		return NewRepository(config.DB, config.Logger), nil
	case StoreTypeMemory:
		return NewMemoryStore(config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
