package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/pkg/migration"
)

func init() {
	migration.Register("20240101000001_create_groups_table", createGroupsTable{})
	migration.Register("20240101000002_create_users_table", createUsersTable{})
	migration.Register("20240101000003_create_customers_table", createCustomersTable{})
}

type createGroupsTable struct{}

func (createGroupsTable) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.Group{}) }
func (createGroupsTable) Down(db *gorm.DB) error { return db.Migrator().DropTable("groups") }

type createUsersTable struct{}

func (createUsersTable) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.User{}) }
func (createUsersTable) Down(db *gorm.DB) error { return db.Migrator().DropTable("users") }

type createCustomersTable struct{}

func (createCustomersTable) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.Customer{}) }
func (createCustomersTable) Down(db *gorm.DB) error { return db.Migrator().DropTable("customers") }
