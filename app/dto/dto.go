// Package dto holds the JSON shapes the API returns. They are built per
// request from models and never persisted.
package dto

import (
	"hash/fnv"
	"strconv"

	"github.com/shashiranjanraj/shopservice/app/models"
	"github.com/shashiranjanraj/shopservice/pkg/collection"
)

// ShopDTO is a shop without its products.
type ShopDTO struct {
	ShopID   int64  `json:"shopId"`
	ShopName string `json:"shopName"`
}

// Equal compares by id only; two projections of the same shop are equal
// even if one was taken before a rename.
func (d ShopDTO) Equal(o ShopDTO) bool {
	return d.ShopID == o.ShopID
}

func (d ShopDTO) HashCode() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.FormatInt(d.ShopID, 10)))
	return h.Sum64()
}

func (d ShopDTO) String() string {
	return "ShopDTO[shopId=" + strconv.FormatInt(d.ShopID, 10) + ",shopName=" + d.ShopName + "]"
}

// ProductSmallDTO is the minimal product listing entry.
type ProductSmallDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RestErrorDTO is the body of every error response produced by
// exceptions.Render.
type RestErrorDTO struct {
	Message string `json:"message"`
	ShopID  *int64 `json:"shopId,omitempty"`
	Value   string `json:"value,omitempty"`
}

func ShopToDTO(s models.Shop) ShopDTO {
	return ShopDTO{ShopID: s.ID, ShopName: s.Name}
}

// ShopsToDTOs never returns nil.
func ShopsToDTOs(shops []models.Shop) []ShopDTO {
	return collection.Map(shops, ShopToDTO)
}

func ProductToSmallDTO(p models.Product) ProductSmallDTO {
	return ProductSmallDTO{ID: p.ID, Name: p.Name}
}

// ProductsToSmallDTOs never returns nil.
func ProductsToSmallDTOs(products []models.Product) []ProductSmallDTO {
	return collection.Map(products, ProductToSmallDTO)
}
