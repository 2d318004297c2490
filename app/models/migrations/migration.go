package migrations

import (
	"github.com/soundstitch/storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Sample{},
		&models.Pack{},
		&models.CartSnapshot{},
		&models.CheckoutDetails{},
		&models.Order{},
		&models.OrderItem{},
	)
}
