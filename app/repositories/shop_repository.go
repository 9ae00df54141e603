package repositories

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/shopservice/app/models"
	"github.com/shashiranjanraj/shopservice/pkg/logger"
	"github.com/shashiranjanraj/shopservice/pkg/orm"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = orm.ErrNotFound

const shopsCacheKey = "shops:all"

// ShopRepository handles database operations for Shop.
type ShopRepository struct {
	db *orm.DB
}

func NewShopRepository(db *orm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// FindAll returns every shop ordered by id. Products are not loaded.
func (r *ShopRepository) FindAll(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.Model(ctx, &models.Shop{}).
		Select("id", "name").
		Order("id").
		Cache(shopsCacheKey, &shops)
	return shops, err
}

// FindByID looks up a shop by primary key.
func (r *ShopRepository) FindByID(ctx context.Context, id int64) (*models.Shop, error) {
	var shop models.Shop
	err := r.db.Model(ctx, &models.Shop{}).Where("id = ?", id).First(&shop)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// Exists reports whether a shop with id is stored.
func (r *ShopRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.db.Model(ctx, &models.Shop{}).Where("id = ?", id).Exists()
}

// Create persists a new shop and drops the cached shop list.
func (r *ShopRepository) Create(ctx context.Context, shop *models.Shop) error {
	if err := r.db.Create(ctx, shop); err != nil {
		return err
	}
	forget(ctx, r.db, shopsCacheKey)
	return nil
}

// ForgetCached drops the cached shop list and every stored shop's cached
// product list. Call it after writing rows outside the repositories.
func (r *ShopRepository) ForgetCached(ctx context.Context) error {
	var ids []int64
	if err := r.db.Model(ctx, &models.Shop{}).Order("id").Pluck("id", &ids); err != nil {
		return err
	}
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, shopsCacheKey)
	for _, id := range ids {
		keys = append(keys, productsCacheKey(id))
	}
	return r.db.Forget(ctx, keys...)
}

func forget(ctx context.Context, db *orm.DB, keys ...string) {
	if err := db.Forget(ctx, keys...); err != nil {
		logger.WithCtx(ctx).Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}

// IsNotFound reports whether err came from a lookup that matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
