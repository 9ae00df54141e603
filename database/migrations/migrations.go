// Package migrations holds the service's schema history. Importing it
// registers every migration with pkg/migration.
package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopservice/app/models"
	"github.com/shashiranjanraj/shopservice/pkg/migration"
)

func init() {
	migration.Register("20240101000000_create_shop_table", &CreateShopTable{})
	migration.Register("20240101000001_create_product_table", &CreateProductTable{})
}

type CreateShopTable struct{}

func (m *CreateShopTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Shop{})
}

func (m *CreateShopTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(models.Shop{}.TableName())
}

// CreateProductTable adds product with its shop_id foreign key.
type CreateProductTable struct{}

func (m *CreateProductTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(models.Product{}.TableName())
}
