package seeders

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/config"
)

func init() {
	Register("groups", seedGroups)
	Register("catalogue", seedCatalogue)
	Register("admin", seedAdmin)
}

func seedGroups(_ context.Context, db *gorm.DB) error {
	for _, r := range models.Roles {
		if err := db.FirstOrCreate(&models.Group{}, models.Group{Name: r}).Error; err != nil {
			return err
		}
	}
	return nil
}

type productSeed struct {
	name        string
	price       string
	category    models.Category
	description string
	tags        []string
}

var catalogue = []productSeed{
	{"Ball", "19.99", models.CategoryOutDoor, "Size 5 football", []string{"Sports"}},
	{"BBQ Grill", "150.00", models.CategoryOutDoor, "Charcoal grill", []string{"Kitchen", "Summer"}},
	{"Mens Socks", "5.50", models.CategoryIndoor, "Cotton, pack of 3", []string{"Clothing"}},
	{"Office Chair", "120.00", models.CategoryIndoor, "Adjustable height", []string{"Office"}},
	{"Sun Hat", "12.00", models.CategoryOutDoor, "Wide brim", []string{"Clothing", "Summer"}},
}

func seedCatalogue(_ context.Context, db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range catalogue {
			var p models.Product
			err := tx.Where("name = ?", s.name).First(&p).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			tags := make([]models.Tag, 0, len(s.tags))
			for _, name := range s.tags {
				var tag models.Tag
				if err := tx.FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
					return err
				}
				tags = append(tags, tag)
			}
			p = models.Product{
				Name:        s.name,
				Price:       decimal.RequireFromString(s.price),
				Category:    s.category,
				Description: s.description,
				Tags:        tags,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// seedAdmin creates ADMIN_USERNAME when both it and ADMIN_PASSWORD are set.
func seedAdmin(ctx context.Context, db *gorm.DB) error {
	username, password := config.Get("ADMIN_USERNAME", ""), config.Get("ADMIN_PASSWORD", "")
	if username == "" || password == "" {
		return nil
	}
	svc := services.NewAuthService(db, repositories.NewUserRepository(db), nil)
	_, err := svc.CreateAdmin(ctx, username, "", password)
	if errors.Is(err, services.ErrUsernameTaken) {
		return nil
	}
	return err
}
