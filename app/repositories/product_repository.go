package repositories

import (
	"context"
	"strconv"

	"github.com/shashiranjanraj/shopservice/app/models"
	"github.com/shashiranjanraj/shopservice/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db    *orm.DB
	shops *ShopRepository
}

func NewProductRepository(db *orm.DB, shops *ShopRepository) *ProductRepository {
	return &ProductRepository{db: db, shops: shops}
}

func productsCacheKey(shopID int64) string {
	return "shops:" + strconv.FormatInt(shopID, 10) + ":products"
}

// FindAllByShopID returns the shop's products ordered by id. The owning shop
// is not fetched; each product gets a loader that queries it on first
// LoadShop call.
func (r *ProductRepository) FindAllByShopID(ctx context.Context, shopID int64) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Model(ctx, &models.Product{}).
		Where("shop_id = ?", shopID).
		Order("id").
		Cache(productsCacheKey(shopID), &products)
	if err != nil {
		return nil, err
	}

	for i := range products {
		p := &products[i]
		id := p.ShopID
		p.SetShopLoader(func() (*models.Shop, error) {
			return r.shops.FindByID(ctx, id)
		})
	}
	return products, nil
}

// Create persists a new product and drops its shop's cached product list.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.Create(ctx, product); err != nil {
		return err
	}
	forget(ctx, r.db, productsCacheKey(product.ShopID))
	return nil
}
