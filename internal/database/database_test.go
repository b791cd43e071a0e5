package database

import (
	"testing"

	"startupconnect/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func TestOpen_MigratesKVEntries(t *testing.T) {
	db, err := Open(sqlite.Open(":memory:"), config.DriverSQLite)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable("kv_entries"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestDialector(t *testing.T) {
	tests := []struct {
		name        string
		driver      string
		expectName  string
		expectError bool
	}{
		{"Postgres", config.DriverPostgres, "postgres", false},
		{"SQLite", config.DriverSQLite, "sqlite", false},
		{"Redis is not SQL", config.DriverRedis, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(&config.Config{StorageDriver: tt.driver, StoragePath: ":memory:"})
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectName, d.Name())
		})
	}
}
