package seeders

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/shopservice/app/models"
)

func init() {
	Register("shops", SeedShops)
}

// SeedShops creates shop 1 "Acme" selling product 10 "Widget". Running it
// again leaves existing rows untouched.
func SeedShops(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shop := models.Shop{ID: 1, Name: "Acme"}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&shop).Error; err != nil {
			return err
		}
		product := models.Product{ID: 10, Name: "Widget", ShopID: shop.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&product).Error; err != nil {
			return err
		}
		return syncSequences(tx, models.Shop{}.TableName(), models.Product{}.TableName())
	})
}

// syncSequences moves each table's id sequence past the largest stored id.
// Postgres does not advance a serial sequence for explicit ids, so the next
// insert without one would collide with a seeded row.
func syncSequences(tx *gorm.DB, tables ...string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range tables {
		err := tx.Exec(
			"SELECT setval(pg_get_serial_sequence(?, 'id'), (SELECT MAX(id) FROM ?))",
			table, clause.Table{Name: table},
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}
