package routes

import (
	"github.com/shashiranjanraj/shopservice/app/controllers"
	"github.com/shashiranjanraj/shopservice/pkg/router"
)

// RegisterAPI mounts the versioned public API.
func RegisterAPI(r *router.Router, shops *controllers.ShopController) {
	api := r.Group("/api/v1")
	api.Get("/shops", "shops.index", shops.Index)
	api.Get("/shops/{id}/products", "shops.products", shops.Products)
}
