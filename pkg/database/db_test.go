package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteInMemory(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, Options{Driver: "sqlite", DSN: "file::memory:", SlowQuery: 200 * time.Millisecond})
	require.NoError(t, err)
	defer Close(db)

	assert.NoError(t, Ping(ctx, db))

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "oracle", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestBuildDialectorNames(t *testing.T) {
	for _, driver := range []string{"sqlite", "postgres", "mysql", "sqlserver"} {
		d, err := buildDialector(driver, "dsn")
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}
}
