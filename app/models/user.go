package models

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/pkg/auth"
)

// Role is the closed set of principal roles.
type Role = auth.Role

const (
	RoleNone     = auth.RoleNone
	RoleCustomer = auth.RoleCustomer
	RoleAdmin    = auth.RoleAdmin
)

// Roles lists every assignable role.
var Roles = auth.Roles

// Group is a named role tag a user can belong to.
type Group struct {
	gorm.Model
	Name Role `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// User is an authentication principal.
type User struct {
	gorm.Model
	Username string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:254"                      json:"email"`
	Password string `gorm:"size:255;not null"             json:"-"` // bcrypt hash
	GroupID  *uint  `gorm:"index"                         json:"group_id"`
	Group    *Group `gorm:"constraint:OnDelete:SET NULL;" json:"group,omitempty"`
}

// Role returns the user's role, or RoleNone when no group is loaded or the
// group name is not a known role.
func (u User) Role() Role {
	if u.Group == nil || !u.Group.Name.Valid() {
		return RoleNone
	}
	return u.Group.Name
}
