package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
)

// OrderQuery narrows an order listing. Nil fields do not filter.
type OrderQuery struct {
	CustomerID *uint
	ProductID  *uint
	Status     *models.Status
}

func (q OrderQuery) apply(db *gorm.DB) *gorm.DB {
	if q.CustomerID != nil {
		db = db.Where("orders.customer_id = ?", *q.CustomerID)
	}
	if q.ProductID != nil {
		db = db.Where("orders.product_id = ?", *q.ProductID)
	}
	if q.Status != nil {
		db = db.Where("orders.status = ?", *q.Status)
	}
	return db
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Find lists matching orders, oldest first, with customer and product loaded.
func (r *OrderRepository) Find(ctx context.Context, q OrderQuery) ([]models.Order, error) {
	var out []models.Order
	err := q.apply(r.db.WithContext(ctx)).
		Preload("Customer").
		Preload("Product").
		Order("orders.id").
		Find(&out).Error
	return out, err
}

// Count counts matching orders.
func (r *OrderRepository) Count(ctx context.Context, q OrderQuery) (int64, error) {
	var n int64
	err := q.apply(r.db.WithContext(ctx).Model(&models.Order{})).Count(&n).Error
	return n, err
}

// CountByStatus tallies matching orders per status in one query.
func (r *OrderRepository) CountByStatus(ctx context.Context, q OrderQuery) (map[models.Status]int64, error) {
	var rows []struct {
		Status models.Status
		N      int64
	}
	err := q.apply(r.db.WithContext(ctx).Model(&models.Order{})).
		Select("orders.status AS status, COUNT(*) AS n").
		Group("orders.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).Preload("Customer").Preload("Product").First(&o, id).Error
	return o, translate(err)
}

// CreateBatch inserts orders in a single statement.
func (r *OrderRepository) CreateBatch(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Omit("Customer", "Product").Create(&orders).Error)
}

// Update writes product and status of o.
func (r *OrderRepository) Update(ctx context.Context, o *models.Order) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", o.ID).
		Updates(map[string]interface{}{"product_id": o.ProductID, "status": o.Status})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row permanently.
func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&models.Order{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
