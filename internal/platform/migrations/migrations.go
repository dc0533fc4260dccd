package migrations

import (
	"gorm.io/gorm"

	orderspostgres "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/adapters/persistence/postgres"
)

// Run applies the schema owned by the persistence adapters.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderspostgres.OrderRecord{},
	)
}
