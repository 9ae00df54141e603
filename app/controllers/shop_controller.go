package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/shopservice/app/dto"
	"github.com/shashiranjanraj/shopservice/app/exceptions"
	"github.com/shashiranjanraj/shopservice/pkg/logger"
	"github.com/shashiranjanraj/shopservice/pkg/response"
)

type ShopFinder interface {
	FindAll(ctx context.Context) ([]dto.ShopDTO, error)
}

type ProductFinder interface {
	FindAllProductsByShopID(ctx context.Context, shopID string) ([]dto.ProductSmallDTO, error)
}

// ShopController serves the read-only shop API.
type ShopController struct {
	shops    ShopFinder
	products ProductFinder
}

func NewShopController(shops ShopFinder, products ProductFinder) *ShopController {
	return &ShopController{shops: shops, products: products}
}

// Index handles GET /shops: every shop, without products.
func (c *ShopController) Index(w http.ResponseWriter, r *http.Request) {
	logger.WithCtx(r.Context()).Debug("REST request to get all the shops without their products")

	shops, err := c.shops.FindAll(r.Context())
	if err != nil {
		exceptions.Render(w, r, err)
		return
	}
	response.OK(w, shops)
}

// Products handles GET /shops/{id}/products.
func (c *ShopController) Products(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.WithCtx(r.Context()).Debug("REST request to get all the products that belong to a shop", "shop_id", id)

	products, err := c.products.FindAllProductsByShopID(r.Context(), id)
	if err != nil {
		exceptions.Render(w, r, err)
		return
	}
	response.OK(w, products)
}
