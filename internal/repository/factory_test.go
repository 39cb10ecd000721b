package repository_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/tollway/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	logger := slog.Default()

	t.Run("create postgres store successfully", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		store, err := repository.NewStore(repository.StoreConfig{
			Type:   repository.StoreTypePostgres,
			DB:     mock,
			Logger: logger,
		})

		require.NoError(t, err)
		_, ok := store.(*repository.Repository)
		assert.True(t, ok, "expected store to be *Repository")
	})

	t.Run("postgres store without database fails", func(t *testing.T) {
		store, err := repository.NewStore(repository.StoreConfig{
			Type:   repository.StoreTypePostgres,
			Logger: logger,
		})

		require.Error(t, err)
		require.Nil(t, store)
		assert.Contains(t, err.Error(), "database is required for postgres store")
	})

	t.Run("create memory store successfully", func(t *testing.T) {
		store, err := repository.NewStore(repository.StoreConfig{
			Type:   repository.StoreTypeMemory,
			Logger: logger,
		})

		require.NoError(t, err)
		_, ok := store.(*repository.MemoryStore)
		assert.True(t, ok, "expected store to be *MemoryStore")
	})

	t.Run("unsupported store type", func(t *testing.T) {
		store, err := repository.NewStore(repository.StoreConfig{
			Type:   repository.StoreType("mongo"),
			Logger: logger,
		})

		require.Error(t, err)
		require.Nil(t, store)
		assert.Contains(t, err.Error(), "unsupported store type: mongo")
	})
}
