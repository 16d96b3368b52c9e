package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category is a product category.
type Category string

const (
	CategoryIndoor  Category = "Indoor"
	CategoryOutDoor Category = "Out Door"
)

var Categories = []Category{CategoryIndoor, CategoryOutDoor}

func (c Category) Valid() bool {
	return c == CategoryIndoor || c == CategoryOutDoor
}

// Tag labels products.
type Tag struct {
	gorm.Model
	Name string `gorm:"size:200;uniqueIndex;not null" json:"name"`
}

// Product is a catalogue item. Products are read-only over HTTP and loaded
// by the seeders.
type Product struct {
	gorm.Model
	Name        string          `gorm:"size:200;not null"       json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)"      json:"price"`
	Category    Category        `gorm:"size:200"                json:"category"`
	Description string          `gorm:"size:200"                json:"description"`
	Tags        []Tag           `gorm:"many2many:product_tags;" json:"tags"`
}
