package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
)

// UserRepository handles principals and their groups.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// FindByID loads a user with its group.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Preload("Group").First(&u, id).Error
	return u, translate(err)
}

// FindByUsername loads a user with its group.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Preload("Group").Where("username = ?", username).First(&u).Error
	return u, translate(err)
}

// UsernameExists reports whether username is taken.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

// Create inserts u. A taken username yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Omit("Group").Create(u).Error)
}

// Group returns the group for role, creating it on first use.
func (r *UserRepository) Group(ctx context.Context, role models.Role) (models.Group, error) {
	var g models.Group
	err := r.db.WithContext(ctx).Where(models.Group{Name: role}).FirstOrCreate(&g).Error
	return g, translate(err)
}

// AssignGroup makes g the user's only group.
func (r *UserRepository) AssignGroup(ctx context.Context, u *models.User, g models.Group) error {
	err := r.db.WithContext(ctx).Model(u).Update("group_id", g.ID).Error
	if err != nil {
		return translate(err)
	}
	u.GroupID = &g.ID
	u.Group = &g
	return nil
}
