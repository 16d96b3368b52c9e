package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// All lists products with their tags.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := r.db.WithContext(ctx).Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tags.name")
	}).Order("id").Find(&out).Error
	return out, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Preload("Tags").First(&p, id).Error
	return p, translate(err)
}

// Existing returns the subset of ids that name live products.
func (r *ProductRepository) Existing(ctx context.Context, ids []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []uint
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id IN ?", ids).Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}
