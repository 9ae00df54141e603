package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/shopservice/app/dto"
	"github.com/shashiranjanraj/shopservice/app/exceptions"
	"github.com/shashiranjanraj/shopservice/app/models"
)

// ProductStore is the persistence ProductService needs.
type ProductStore interface {
	FindAllByShopID(ctx context.Context, shopID int64) ([]models.Product, error)
}

type ProductService struct {
	shops    ShopStore
	products ProductStore
}

func NewProductService(shops ShopStore, products ProductStore) *ProductService {
	return &ProductService{shops: shops, products: products}
}

// FindAllProductsByShopID lists the products of the shop whose id is given
// as raw text. It fails with *exceptions.InvalidShopIDError when raw is not
// an integer and with *exceptions.ShopNotFoundError when no such shop
// exists. A shop without products yields an empty, non-nil slice.
func (s *ProductService) FindAllProductsByShopID(ctx context.Context, raw string) ([]dto.ProductSmallDTO, error) {
	id, err := ParseShopID(raw)
	if err != nil {
		return nil, err
	}

	ok, err := s.shops.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("services: check shop %d: %w", id, err)
	}
	if !ok {
		return nil, exceptions.NewShopNotFound(id)
	}

	products, err := s.products.FindAllByShopID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("services: list products of shop %d: %w", id, err)
	}
	return dto.ProductsToSmallDTOs(products), nil
}

// ParseShopID parses a decimal shop id.
func ParseShopID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &exceptions.InvalidShopIDError{Raw: raw, Err: err}
	}
	return id, nil
}
