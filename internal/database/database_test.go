package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/backend/internal/config"
)

func TestGetDSN(t *testing.T) {
	dsn := GetDSN(config.DatabaseConfig{
		User: "app",
		Pass: "pass",
		Host: "db",
		Port: "3306",
		Name: "todo",
	})
	assert.Contains(t, dsn, "app:pass@tcp(db:3306)/todo")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestOpenAndMigrate_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todo.db")

	db, err := Open(ctx, config.DatabaseConfig{Driver: config.DriverSQLite, Path: path})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db, config.DriverSQLite))
	// 2回目もエラーにならないこと
	require.NoError(t, Migrate(ctx, db, config.DriverSQLite))

	var n int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'tasks')").Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, Ping(ctx, db))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
}
