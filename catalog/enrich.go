// Package catalog joins products to the tag taxonomy and filters the
// enriched catalog for listing views.
package catalog

import "github.com/sareecustoms/storefront-api/models"

type tagKey struct {
	category models.TagCategory
	name     string
}

// TagIndex resolves (category, name) pairs to tags. Build one per tag fetch.
type TagIndex struct {
	byKey map[tagKey]models.Tag
}

// NewTagIndex indexes tags by category and exact name. When several tags
// share a category and name, the first one wins.
func NewTagIndex(tags []models.Tag) *TagIndex {
	idx := &TagIndex{byKey: make(map[tagKey]models.Tag, len(tags))}
	for _, t := range tags {
		k := tagKey{category: t.Category, name: t.Name}
		if _, seen := idx.byKey[k]; seen {
			continue
		}
		idx.byKey[k] = t
	}
	return idx
}

// Lookup returns the tag for a category and case-sensitive name.
func (idx *TagIndex) Lookup(category models.TagCategory, name string) (models.Tag, bool) {
	if name == "" {
		return models.Tag{}, false
	}
	t, ok := idx.byKey[tagKey{category: category, name: name}]
	return t, ok
}

// Enrich returns p with Tags set to the matches for its color, fabric and
// occasion, in that order. Stored tags on p are replaced.
func (idx *TagIndex) Enrich(p models.Product) models.Product {
	slots := [...]struct {
		category models.TagCategory
		value    string
	}{
		{models.TagCategoryColor, p.Color},
		{models.TagCategoryFabric, p.Fabric},
		{models.TagCategoryOccasion, p.Occasion},
	}

	tags := make([]models.Tag, 0, len(slots))
	for _, s := range slots {
		if t, ok := idx.Lookup(s.category, s.value); ok {
			tags = append(tags, t)
		}
	}
	p.Tags = tags
	return p
}

// Enrich joins every product to tags by attribute name. The input slice is
// not modified.
func Enrich(products []models.Product, tags []models.Tag) []models.Product {
	idx := NewTagIndex(tags)
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = idx.Enrich(p)
	}
	return out
}
