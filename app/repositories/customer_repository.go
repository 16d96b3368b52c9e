package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) WithTx(tx *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: tx}
}

// All lists every customer by ID.
func (r *CustomerRepository) All(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&n).Error
	return n, err
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (models.Customer, error) {
	var c models.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	return c, translate(err)
}

// FindByUserID returns the customer linked to a principal.
func (r *CustomerRepository) FindByUserID(ctx context.Context, userID uint) (models.Customer, error) {
	var c models.Customer
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	return c, translate(err)
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return translate(r.db.WithContext(ctx).Omit("User", "Orders").Create(c).Error)
}

// UpdateProfile writes the self-editable columns of c.
func (r *CustomerRepository) UpdateProfile(ctx context.Context, c *models.Customer) error {
	err := r.db.WithContext(ctx).Model(c).
		Select("name", "phone", "email", "profile_pic").
		Updates(map[string]interface{}{
			"name":        c.Name,
			"phone":       c.Phone,
			"email":       c.Email,
			"profile_pic": c.ProfilePic,
		}).Error
	return translate(err)
}
