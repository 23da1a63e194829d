package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TagCategory is the attribute slot a tag classifies.
type TagCategory string

const (
	TagCategoryFabric    TagCategory = "fabric"
	TagCategoryColor     TagCategory = "color"
	TagCategoryOccasion  TagCategory = "occasion"
	TagCategoryStyle     TagCategory = "style"
	TagCategoryDressType TagCategory = "dressType"
)

// TagCategories lists every category in display order.
var TagCategories = []TagCategory{
	TagCategoryFabric,
	TagCategoryColor,
	TagCategoryOccasion,
	TagCategoryStyle,
	TagCategoryDressType,
}

// ParseTagCategory maps any casing of a category name ("Fabric",
// "dresstype", "DRESSTYPE") onto its canonical value.
func ParseTagCategory(s string) (TagCategory, error) {
	s = strings.TrimSpace(s)
	for _, c := range TagCategories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown tag category %q", s)
}

// Valid reports whether c is one of the canonical category values.
func (c TagCategory) Valid() bool {
	for _, known := range TagCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c *TagCategory) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseTagCategory(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type Tag struct {
	ID        string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string      `gorm:"type:varchar(100);not null;index" json:"name"`
	Category  TagCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	ColorHex  *string     `gorm:"type:varchar(16)" json:"colorHex"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) Validate() error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return invalid("name", "name is required")
	}
	if t.Category == "" {
		return invalid("category", "category is required")
	}
	if !t.Category.Valid() {
		return invalid("category", "unknown category")
	}
	if t.ColorHex != nil && strings.TrimSpace(*t.ColorHex) == "" {
		t.ColorHex = nil
	}
	return nil
}
