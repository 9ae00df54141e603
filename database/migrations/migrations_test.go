package migrations

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/shopservice/pkg/migration"
)

func TestMigrateAndRollback(t *testing.T) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	ctx := context.Background()
	r := migration.New(db)

	applied, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"20240101000000_create_shop_table",
		"20240101000001_create_product_table",
	}, applied)

	assert.True(t, db.Migrator().HasTable("shop"))
	assert.True(t, db.Migrator().HasTable("product"))
	assert.True(t, db.Migrator().HasColumn("product", "shop_id"))

	_, err = r.Rollback(ctx)
	require.NoError(t, err)
	assert.False(t, db.Migrator().HasTable("product"))
	assert.False(t, db.Migrator().HasTable("shop"))
}
