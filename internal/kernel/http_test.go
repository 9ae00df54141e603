package kernel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/shopservice/app/models"
	"github.com/shashiranjanraj/shopservice/pkg/cache"
	"github.com/shashiranjanraj/shopservice/pkg/orm"
	"github.com/shashiranjanraj/shopservice/pkg/reqid"
	"github.com/shashiranjanraj/shopservice/pkg/testkit"
)

func newStack(t *testing.T, opts ...orm.Option) (*gorm.DB, http.Handler) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(&models.Shop{}, &models.Product{}))
	require.NoError(t, gdb.Create(&models.Shop{ID: 1, Name: "Acme"}).Error)
	require.NoError(t, gdb.Create(&models.Product{ID: 10, Name: "Widget", ShopID: 1}).Error)

	k := NewHTTPKernel(Options{DB: orm.New(gdb, opts...)})
	t.Cleanup(k.Close)
	return gdb, k.Handler()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestShopAPIScenarios(t *testing.T) {
	_, h := newStack(t)
	testkit.RunDir(t, h, "testdata")
}

func TestResponsesCarryRequestID(t *testing.T) {
	_, h := newStack(t)
	assert.NotEmpty(t, get(h, "/api/v1/shops").Header().Get(reqid.Header))
}

func TestShopWithoutProductsIsEmptyList(t *testing.T) {
	gdb, h := newStack(t)
	require.NoError(t, gdb.Create(&models.Shop{ID: 2, Name: "Empty"}).Error)

	rec := get(h, "/api/v1/shops/2/products")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestShopListHasNoNestedProducts(t *testing.T) {
	_, h := newStack(t)

	var shops []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(get(h, "/api/v1/shops").Body.Bytes(), &shops))
	require.Len(t, shops, 1)
	assert.NotContains(t, shops[0], "products")
	assert.Len(t, shops[0], 2)
}

func TestCachedStack(t *testing.T) {
	mr := miniredis.RunT(t)
	store := cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "shop:")
	_, h := newStack(t, orm.WithCache(store, time.Minute))

	for i := 0; i < 2; i++ {
		rec := get(h, "/api/v1/shops/1/products")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":10,"name":"Widget"}]`, rec.Body.String())
	}
	assert.True(t, mr.Exists("shop:shops:1:products"))
}

func TestOperationalEndpoints(t *testing.T) {
	_, h := newStack(t)

	rec := get(h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","database":"up","cache":"disabled"}`, rec.Body.String())

	get(h, "/api/v1/shops")
	rec = get(h, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `shop_http_request_duration_seconds`)
	assert.Contains(t, rec.Body.String(), `route="/api/v1/shops"`)

	rec = get(h, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, rec.Body.String())
}

type downCache struct{}

func (downCache) Ping(context.Context) error { return errors.New("refused") }

func TestHealthDegradedAndDown(t *testing.T) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	k := NewHTTPKernel(Options{DB: orm.New(gdb), Cache: downCache{}})
	rec := get(k.Handler(), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","database":"up","cache":"down"}`, rec.Body.String())

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec = get(k.Handler(), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","database":"down","cache":"down"}`, rec.Body.String())
}

func TestRoutesWithoutDatabase(t *testing.T) {
	k := NewHTTPKernel(Options{})
	names := map[string]string{}
	for _, ri := range k.Routes() {
		names[ri.Name] = ri.Path
	}
	assert.Equal(t, "/api/v1/shops", names["shops.index"])
	assert.Equal(t, "/api/v1/shops/{id}/products", names["shops.products"])
	assert.Equal(t, "/health", names["health"])
}

func TestRateLimit(t *testing.T) {
	k := NewHTTPKernel(Options{RateLimitPerMinute: 1})
	defer k.Close()

	assert.Equal(t, http.StatusServiceUnavailable, get(k.Handler(), "/health").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(k.Handler(), "/health").Code)
}
