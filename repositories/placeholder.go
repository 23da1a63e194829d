package repositories

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/sareecustoms/storefront-api/models"
)

// PlaceholderAdminID is recognized as an administrator in degraded mode.
const PlaceholderAdminID = "admin-mock-id"

const placeholderImage = "https://placehold.co/600x400"

func strPtr(s string) *string { return &s }

// PlaceholderProducts is the catalog served when no database is configured,
// newest first.
func PlaceholderProducts() []models.Product {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Product{
		{
			ID:          "p1",
			Name:        "Premium Kanchipuram Silk",
			Description: "Traditional silk saree with rich gold work.",
			Price:       decimal.NewFromInt(15000),
			Fabric:      "Silk",
			Color:       "Red",
			Occasion:    "Wedding",
			DressType:   strPtr("Saree"),
			Stock:       5,
			Images:      datatypes.JSONSlice[string]{placeholderImage},
			CreatedAt:   created.Add(time.Hour),
			UpdatedAt:   created.Add(time.Hour),
		},
		{
			ID:          "p2",
			Name:        "Soft Cotton Daily Wear",
			Description: "Comfortable cotton saree for everyday use.",
			Price:       decimal.NewFromInt(2000),
			Fabric:      "Cotton",
			Color:       "Blue",
			Occasion:    "Casual",
			DressType:   strPtr("Saree"),
			Stock:       10,
			Images:      datatypes.JSONSlice[string]{placeholderImage},
			CreatedAt:   created,
			UpdatedAt:   created,
		},
	}
}

func PlaceholderTags() []models.Tag {
	return []models.Tag{
		{ID: "t1", Name: "Silk", Category: models.TagCategoryFabric, ColorHex: strPtr("#8B0000")},
		{ID: "t2", Name: "Cotton", Category: models.TagCategoryFabric, ColorHex: strPtr("#F0F8FF")},
	}
}

// NewPlaceholderRepositories returns in-memory stores seeded with the
// placeholder catalog. Writes succeed and last for the life of the process.
func NewPlaceholderRepositories() *Repositories {
	repos := NewMemoryRepositories(PlaceholderAdminID)
	repos.Products = NewMemoryProducts(PlaceholderProducts()...)
	repos.Tags = NewMemoryTags(PlaceholderTags()...)
	return repos
}
