package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/orderdesk/app/models"
)

func TestStatusValid(t *testing.T) {
	for _, s := range models.Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, models.Status("pending").Valid(), "statuses are case sensitive")
	assert.False(t, models.Status("").Valid())
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, models.CategoryOutDoor.Valid())
	assert.False(t, models.Category("Outdoor").Valid())
}

func TestUserRole(t *testing.T) {
	assert.Equal(t, models.RoleNone, models.User{}.Role())
	assert.Equal(t, models.RoleAdmin, models.User{Group: &models.Group{Name: models.RoleAdmin}}.Role())
	assert.Equal(t, models.RoleNone, models.User{Group: &models.Group{Name: "staff"}}.Role())
}
