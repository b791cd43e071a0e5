package storage

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"

	"startupconnect/internal/config"
	"startupconnect/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// exerciseStorage runs the shared Storage contract against s.
func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "startup_connect_users", `[{"id":"1"}]`))
	v, found, err := s.Get(ctx, "startup_connect_users")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, s.Set(ctx, "startup_connect_users", `[]`))
	v, _, err = s.Get(ctx, "startup_connect_users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Remove(ctx, "startup_connect_users"))
	_, found, err = s.Get(ctx, "startup_connect_users")
	require.NoError(t, err)
	assert.False(t, found)

	// Removing an absent key is not an error.
	assert.NoError(t, s.Remove(ctx, "startup_connect_users"))
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exerciseStorage(t, m)

	require.NoError(t, m.Set(context.Background(), "a", "b"))
	assert.Equal(t, map[string]string{"a": "b"}, m.Dump())

	require.NoError(t, m.Close())
	_, _, err := m.Get(context.Background(), "a")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Set(context.Background(), "a", "c"), ErrClosed)
}

func TestSQL_SQLite(t *testing.T) {
	db, err := database.Open(sqlite.Open(":memory:"), config.DriverSQLite)
	require.NoError(t, err)

	s := NewSQL(db)
	exerciseStorage(t, s)
	assert.NoError(t, s.Close())
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gormDB, mock
}

func TestSQL_PostgresErrorsAreWrapped(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewSQL(db)
	ctx := context.Background()
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "kv_entries"`)).WillReturnError(boom)
	_, found, err := s.Get(ctx, "startup_connect_users")
	assert.ErrorIs(t, err, boom)
	assert.False(t, found)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "kv_entries"`)).WillReturnError(boom)
	err = s.Remove(ctx, "startup_connect_users")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "startup_connect_users")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedis(client)
	exerciseStorage(t, s)

	require.NoError(t, s.Set(context.Background(), "k", "v"))
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
	assert.NoError(t, s.Close())
}

func TestRedis_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	s := NewRedis(client)
	mr.Close()

	_, _, err = s.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestMongo(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	s, err := ConnectMongo(context.Background(), uri, "startup_connect_test", "kv_entries_test")
	require.NoError(t, err)
	defer s.Close()

	exerciseStorage(t, s)
}

func TestInstrumented_PassesThrough(t *testing.T) {
	m := NewMemory()
	s := Instrument(m, config.DriverMemory)
	exerciseStorage(t, s)
	assert.Same(t, m, s.Unwrap())

	require.NoError(t, m.Close())
	assert.ErrorIs(t, s.Ping(context.Background()), ErrClosed)
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), &config.Config{StorageDriver: config.DriverMemory})
	require.NoError(t, err)
	_, ok := s.(*Instrumented)
	assert.True(t, ok)

	s, err = Open(context.Background(), &config.Config{StorageDriver: config.DriverSQLite, StoragePath: ":memory:"})
	require.NoError(t, err)
	exerciseStorage(t, s)

	_, err = Open(context.Background(), &config.Config{StorageDriver: "etcd"})
	assert.Error(t, err)
}

func TestNewKeys(t *testing.T) {
	k := NewKeys("")
	assert.Equal(t, "startup_connect_users", k.Users)
	assert.Equal(t, "startup_connect_current_user", k.CurrentUser)
	assert.Len(t, k.All(), 7)

	custom := NewKeys("demo_")
	assert.Equal(t, "demo_requests", custom.Requests)
}
