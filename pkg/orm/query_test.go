package orm

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/shopservice/pkg/cache"
	"github.com/shashiranjanraj/shopservice/pkg/metrics"
)

type widget struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}

func (widget) TableName() string { return "orm_widget" }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestCreateGetFirstExists(t *testing.T) {
	ctx := context.Background()
	d := New(openTestDB(t))

	require.NoError(t, d.Create(ctx, &widget{Name: "a"}))
	require.NoError(t, d.Create(ctx, &widget{Name: "b"}))

	var all []widget
	require.NoError(t, d.Model(ctx, &widget{}).Order("id").Get(&all))
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)

	var one widget
	require.NoError(t, d.Model(ctx, &widget{}).Where("name = ?", "b").First(&one))
	assert.Equal(t, int64(2), one.ID)

	err := d.Model(ctx, &widget{}).Where("name = ?", "zzz").First(&one)
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := d.Model(ctx, &widget{}).Where("id = ?", 1).Exists()
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.Model(ctx, &widget{}).Where("id = ?", 99).Exists()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQueryIsImmutable(t *testing.T) {
	ctx := context.Background()
	d := New(openTestDB(t))
	require.NoError(t, d.Create(ctx, &widget{Name: "a"}))
	require.NoError(t, d.Create(ctx, &widget{Name: "b"}))

	base := d.Model(ctx, &widget{})
	_ = base.Where("name = ?", "a")

	var all []widget
	require.NoError(t, base.Get(&all))
	assert.Len(t, all, 2)
}

func TestCacheWithoutStoreFallsThrough(t *testing.T) {
	ctx := context.Background()
	d := New(openTestDB(t), WithCache(nil, time.Minute))
	require.NoError(t, d.Create(ctx, &widget{Name: "a"}))

	var all []widget
	require.NoError(t, d.Model(ctx, &widget{}).Cache("widgets", &all))
	assert.Len(t, all, 1)
	assert.NoError(t, d.Forget(ctx, "widgets"))
}

func TestCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	store := cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")
	d := New(openTestDB(t), WithCache(store, time.Minute))
	require.NoError(t, d.Create(ctx, &widget{Name: "a"}))

	hits := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("orm_widget"))
	misses := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("orm_widget"))

	var first []widget
	require.NoError(t, d.Model(ctx, &widget{}).Cache("widgets", &first))
	assert.Len(t, first, 1)
	assert.True(t, mr.Exists("test:widgets"))

	// A row written behind the cache's back is invisible until Forget.
	require.NoError(t, d.Gorm().Create(&widget{Name: "b"}).Error)

	var second []widget
	require.NoError(t, d.Model(ctx, &widget{}).Cache("widgets", &second))
	assert.Len(t, second, 1)

	assert.Equal(t, misses+1, testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("orm_widget")))
	assert.Equal(t, hits+1, testutil.ToFloat64(metrics.CacheHits.WithLabelValues("orm_widget")))

	require.NoError(t, d.Forget(ctx, "widgets"))
	var third []widget
	require.NoError(t, d.Model(ctx, &widget{}).Cache("widgets", &third))
	assert.Len(t, third, 2)
}

func TestWithCacheZeroTTLDisables(t *testing.T) {
	mr := miniredis.RunT(t)
	store := cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
	d := New(openTestDB(t), WithCache(store, 0))
	assert.Nil(t, d.cache)
}
