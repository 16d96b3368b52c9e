package repositories_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/internal/testdb"
)

type fixture struct {
	db        *gorm.DB
	customers *repositories.CustomerRepository
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository
	users     *repositories.UserRepository
}

func setup(t *testing.T) fixture {
	db := testdb.New(t)
	return fixture{
		db:        db,
		customers: repositories.NewCustomerRepository(db),
		products:  repositories.NewProductRepository(db),
		orders:    repositories.NewOrderRepository(db),
		users:     repositories.NewUserRepository(db),
	}
}

func (f fixture) product(t *testing.T, name string, tags ...string) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: decimal.NewFromFloat(9.5), Category: models.CategoryIndoor}
	for _, tag := range tags {
		p.Tags = append(p.Tags, models.Tag{Name: tag})
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f fixture) customer(t *testing.T, name string) models.Customer {
	t.Helper()
	c := models.Customer{Name: name}
	require.NoError(t, f.customers.Create(context.Background(), &c))
	return c
}

func TestOrderFiltering(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	widget, gadget := f.product(t, "Widget"), f.product(t, "Gadget")
	alice, bob := f.customer(t, "alice"), f.customer(t, "bob")

	require.NoError(t, f.orders.CreateBatch(ctx, []models.Order{
		{CustomerID: alice.ID, ProductID: widget.ID, Status: models.StatusPending},
		{CustomerID: alice.ID, ProductID: gadget.ID, Status: models.StatusDelivered},
		{CustomerID: bob.ID, ProductID: gadget.ID, Status: models.StatusDelivered},
	}))

	delivered := models.StatusDelivered
	got, err := f.orders.Find(ctx, repositories.OrderQuery{CustomerID: &alice.ID, Status: &delivered})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gadget", got[0].Product.Name)
	assert.Equal(t, "alice", got[0].Customer.Name)

	n, err := f.orders.Count(ctx, repositories.OrderQuery{ProductID: &gadget.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	byStatus, err := f.orders.CountByStatus(ctx, repositories.OrderQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byStatus[models.StatusDelivered])
	assert.Equal(t, int64(1), byStatus[models.StatusPending])
	assert.Zero(t, byStatus[models.StatusOutForDelivery])
}

func TestOrderForeignKeys(t *testing.T) {
	f := setup(t)
	c := f.customer(t, "alice")
	err := f.orders.CreateBatch(context.Background(), []models.Order{
		{CustomerID: c.ID, ProductID: 999, Status: models.StatusPending},
	})
	assert.Error(t, err, "a missing product is rejected by the store")
}

func TestOrderUpdateAndDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.product(t, "Widget")
	c := f.customer(t, "alice")
	orders := []models.Order{{CustomerID: c.ID, ProductID: p.ID, Status: models.StatusPending}}
	require.NoError(t, f.orders.CreateBatch(ctx, orders))
	id := orders[0].ID
	require.NotZero(t, id)

	o := orders[0]
	o.Status = models.StatusOutForDelivery
	require.NoError(t, f.orders.Update(ctx, &o))
	got, err := f.orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOutForDelivery, got.Status)

	require.NoError(t, f.orders.Delete(ctx, id))
	_, err = f.orders.FindByID(ctx, id)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, f.orders.Delete(ctx, id), repositories.ErrNotFound)

	var raw int64
	f.db.Unscoped().Model(&models.Order{}).Where("id = ?", id).Count(&raw)
	assert.Zero(t, raw, "delete is permanent")
}

func TestUsersAndGroups(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	u := models.User{Username: "ada", Password: "hash"}
	require.NoError(t, f.users.Create(ctx, &u))
	dup := models.User{Username: "ada", Password: "hash"}
	assert.ErrorIs(t, f.users.Create(ctx, &dup), repositories.ErrDuplicate)

	g1, err := f.users.Group(ctx, models.RoleCustomer)
	require.NoError(t, err)
	g2, err := f.users.Group(ctx, models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, g1.ID, g2.ID, "groups are created once")

	require.NoError(t, f.users.AssignGroup(ctx, &u, g1))
	loaded, err := f.users.FindByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, loaded.Role())

	_, err = f.users.FindByID(ctx, 12345)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductsWithTags(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.product(t, "Sun Hat", "Summer", "Clothing")

	all, err := f.products.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Tags, 2)
	assert.Equal(t, "Clothing", all[0].Tags[0].Name)
	assert.True(t, all[0].Price.Equal(decimal.NewFromFloat(9.5)))

	exist, err := f.products.Existing(ctx, []uint{p.ID, 77})
	require.NoError(t, err)
	assert.True(t, exist[p.ID])
	assert.False(t, exist[77])
}

func TestCustomerProfile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := models.User{Username: "bob", Password: "x"}
	require.NoError(t, f.users.Create(ctx, &u))
	c := models.Customer{UserID: &u.ID, Name: "bob"}
	require.NoError(t, f.customers.Create(ctx, &c))

	c.Phone = "555"
	c.ProfilePic = "profiles/x.png"
	require.NoError(t, f.customers.UpdateProfile(ctx, &c))

	got, err := f.customers.FindByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "555", got.Phone)
	assert.Equal(t, "profiles/x.png", got.ProfilePic)

	second := models.Customer{UserID: &u.ID, Name: "again"}
	assert.ErrorIs(t, f.customers.Create(ctx, &second), repositories.ErrDuplicate,
		"a principal links to at most one customer")

	n, err := f.customers.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
