package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Product struct {
	ID          string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string                      `gorm:"type:varchar(200);not null" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	Price       decimal.Decimal             `gorm:"type:decimal(10,2);not null" json:"price"`
	Fabric      string                      `gorm:"type:varchar(100);index" json:"fabric"`
	Color       string                      `gorm:"type:varchar(100);index" json:"color"`
	Occasion    string                      `gorm:"type:varchar(100);index" json:"occasion"`
	Style       *string                     `gorm:"type:varchar(100)" json:"style"`
	DressType   *string                     `gorm:"type:varchar(100)" json:"dressType"`
	Stock       int                         `gorm:"not null;default:0" json:"stock"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Featured    bool                        `gorm:"not null;default:false" json:"featured"`
	CreatedAt   time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`

	// Tags is derived from Fabric, Color and Occasion at read time.
	Tags []Tag `gorm:"-" json:"tags"`
}

func (Product) TableName() string {
	return "products"
}

// CoverImage is the display image, empty when the product has none.
func (p Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Product) StyleValue() string {
	if p.Style == nil {
		return ""
	}
	return *p.Style
}

func (p Product) DressTypeValue() string {
	if p.DressType == nil {
		return ""
	}
	return *p.DressType
}

// Snapshot returns a copy that shares no slices with p.
func (p Product) Snapshot() Product {
	s := p
	if p.Images != nil {
		s.Images = append(datatypes.JSONSlice[string]{}, p.Images...)
	}
	if p.Tags != nil {
		s.Tags = append([]Tag{}, p.Tags...)
	}
	if p.Style != nil {
		v := *p.Style
		s.Style = &v
	}
	if p.DressType != nil {
		v := *p.DressType
		s.DressType = &v
	}
	return s
}

func (p *Product) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return invalid("name", "name is required")
	}
	if p.Price.IsNegative() {
		return invalid("price", "price cannot be negative")
	}
	if p.Stock < 0 {
		return invalid("stock", "stock cannot be negative")
	}
	if p.Images == nil {
		p.Images = datatypes.JSONSlice[string]{}
	}
	return nil
}
