package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopservice/app/controllers"
	"github.com/shashiranjanraj/shopservice/app/dto"
	"github.com/shashiranjanraj/shopservice/pkg/router"
)

type stubShops struct{}

func (stubShops) FindAll(context.Context) ([]dto.ShopDTO, error) {
	return []dto.ShopDTO{{ShopID: 1, ShopName: "Acme"}}, nil
}

type stubProducts struct{}

func (stubProducts) FindAllProductsByShopID(context.Context, string) ([]dto.ProductSmallDTO, error) {
	return nil, nil
}

func TestRegisterAPI(t *testing.T) {
	r := router.New()
	RegisterAPI(r, controllers.NewShopController(stubShops{}, stubProducts{}))

	assert.Equal(t, []router.RouteInfo{
		{Method: http.MethodGet, Path: "/api/v1/shops", Name: "shops.index"},
		{Method: http.MethodGet, Path: "/api/v1/shops/{id}/products", Name: "shops.products"},
	}, r.Routes())

	url, err := r.URL("shops.products", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/shops/7/products", url)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
