package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/shopservice/app/dto"
	"github.com/shashiranjanraj/shopservice/app/models"
)

// ShopStore is the persistence ShopService needs.
type ShopStore interface {
	FindAll(ctx context.Context) ([]models.Shop, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type ShopService struct {
	shops ShopStore
}

func NewShopService(shops ShopStore) *ShopService {
	return &ShopService{shops: shops}
}

// FindAll returns every shop without its products.
func (s *ShopService) FindAll(ctx context.Context) ([]dto.ShopDTO, error) {
	shops, err := s.shops.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list shops: %w", err)
	}
	return dto.ShopsToDTOs(shops), nil
}
