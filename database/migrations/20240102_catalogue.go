package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/pkg/migration"
)

func init() {
	migration.Register("20240102000001_create_tags_table", createTagsTable{})
	migration.Register("20240102000002_create_products_table", createProductsTable{})
	migration.Register("20240102000003_create_orders_table", createOrdersTable{})
}

type createTagsTable struct{}

func (createTagsTable) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.Tag{}) }
func (createTagsTable) Down(db *gorm.DB) error { return db.Migrator().DropTable("tags") }

// createProductsTable also creates the product_tags join table.
type createProductsTable struct{}

func (createProductsTable) Up(db *gorm.DB) error { return db.AutoMigrate(&models.Product{}) }
func (createProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_tags", "products")
}

type createOrdersTable struct{}

func (createOrdersTable) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.Order{}) }
func (createOrdersTable) Down(db *gorm.DB) error { return db.Migrator().DropTable("orders") }
