package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopservice/app/models"
)

func TestShopDTOHasNoProducts(t *testing.T) {
	shop := models.Shop{ID: 1, Name: "Acme", Products: []models.Product{{ID: 10, Name: "Widget", ShopID: 1}}}

	b, err := json.Marshal(ShopsToDTOs([]models.Shop{shop}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"shopId":1,"shopName":"Acme"}]`, string(b))
}

func TestShopDTOEqualityByID(t *testing.T) {
	a := ShopDTO{ShopID: 1, ShopName: "Acme"}
	b := ShopDTO{ShopID: 1, ShopName: "Acme Corp"}
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.HashCode(), b.HashCode())
	assert.False(t, a.Equal(ShopDTO{ShopID: 2, ShopName: "Acme"}))
	assert.Equal(t, "ShopDTO[shopId=1,shopName=Acme]", a.String())
}

func TestProductsToSmallDTOs(t *testing.T) {
	out := ProductsToSmallDTOs([]models.Product{{ID: 10, Name: "Widget", ShopID: 1}})
	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":10,"name":"Widget"}]`, string(b))

	empty := ProductsToSmallDTOs(nil)
	require.NotNil(t, empty)
	b, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestRestErrorDTOKeepsZeroShopID(t *testing.T) {
	var id int64
	b, err := json.Marshal(RestErrorDTO{Message: "Shop not found", ShopID: &id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Shop not found","shopId":0}`, string(b))

	b, err = json.Marshal(RestErrorDTO{Message: "Internal Server Error"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, string(b))
}
